package ingest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/rogerio-castellano/pos-dashboard/internal/config"
	"github.com/rogerio-castellano/pos-dashboard/internal/models"
)

// Stage is a step of one import attempt.
type Stage int

const (
	StageStart Stage = iota
	StageDetecting
	StageMapping
	StageNormalizing
	StageValidating
	StageCommitting
	StageDone
	StageFailed
)

var stageNames = [...]string{"START", "DETECTING", "MAPPING", "NORMALIZING", "VALIDATING", "COMMITTING", "DONE", "FAILED"}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return fmt.Sprintf("Stage(%d)", int(s))
	}
	return stageNames[s]
}

func (s Stage) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Replacer is the part of the record store the importer writes through.
// ReplaceAll must be atomic.
type Replacer interface {
	ReplaceAll(ctx context.Context, products []models.Product) error
}

// ImportObserver is told about every committed import. Its errors are logged
// and never undo the import.
type ImportObserver interface {
	ImportCommitted(ctx context.Context, r Report) error
}

// Options is the data that drives the pipeline.
type Options struct {
	Encodings       []Encoding
	Delimiters      []rune
	Aliases         Aliases
	CodeWidth       int
	DefaultCategory string
	PreviewRows     int
}

func DefaultOptions() Options {
	return Options{
		Encodings:       DefaultEncodings(),
		Delimiters:      DefaultDelimiters(),
		Aliases:         DefaultAliases(),
		CodeWidth:       5,
		DefaultCategory: models.DefaultCategory,
		PreviewRows:     10,
	}
}

// OptionsFromConfig resolves configured names into pipeline options.
func OptionsFromConfig(c config.IngestConfig) (Options, error) {
	opts := DefaultOptions()
	opts.CodeWidth = c.CodeWidth
	opts.PreviewRows = c.PreviewRows
	if c.DefaultCategory != "" {
		opts.DefaultCategory = c.DefaultCategory
	}

	if len(c.Encodings) > 0 {
		opts.Encodings = nil
		for _, name := range c.Encodings {
			enc, err := ParseEncoding(name)
			if err != nil {
				return Options{}, err
			}
			opts.Encodings = append(opts.Encodings, enc)
		}
	}
	if len(c.Delimiters) > 0 {
		opts.Delimiters = nil
		for _, s := range c.Delimiters {
			d, err := ParseDelimiter(s)
			if err != nil {
				return Options{}, err
			}
			opts.Delimiters = append(opts.Delimiters, d)
		}
	}

	aliases, err := opts.Aliases.With(c.Aliases)
	if err != nil {
		return Options{}, err
	}
	opts.Aliases = aliases
	return opts, nil
}

// Report summarizes one import attempt.
type Report struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	Source   Source `json:"source"`
	// Mapping shows which source header fed each canonical field.
	Mapping    map[Field]string `json:"mapping"`
	Ignored    []string         `json:"ignored_columns,omitempty"`
	Rows       int              `json:"rows"`
	Imported   int              `json:"imported"`
	Dropped    []Issue          `json:"dropped,omitempty"`
	Duplicates int              `json:"duplicates"`
	Committed  bool             `json:"committed"`
	StartedAt  time.Time        `json:"started_at"`
	FinishedAt time.Time        `json:"finished_at"`
}

// Preview is a dry run: everything but the commit, plus the head of the result.
type Preview struct {
	Report   Report           `json:"report"`
	Products []models.Product `json:"products"`
}

// Importer runs the detect, map, normalize, validate and commit stages for
// one file at a time. It holds no lock; concurrent imports race and the last
// commit wins.
type Importer struct {
	store       Replacer
	detector    *Detector
	mapper      *Mapper
	normalizer  Normalizer
	validator   *Validator
	previewRows int
	observers   []ImportObserver
	log         *logrus.Entry
	now         func() time.Time
}

func NewImporter(store Replacer, opts Options, log *logrus.Entry, observers ...ImportObserver) *Importer {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Importer{
		store:       store,
		detector:    NewDetector(opts.Encodings, opts.Delimiters, opts.Aliases),
		mapper:      NewMapper(opts.Aliases, opts.DefaultCategory),
		normalizer:  Normalizer{CodeWidth: opts.CodeWidth},
		validator:   NewValidator(),
		previewRows: opts.PreviewRows,
		observers:   observers,
		log:         log.WithField("component", "importer"),
		now:         time.Now,
	}
}

// Import replaces the stored product set with the contents of data. On any
// error the store is left as it was.
func (im *Importer) Import(ctx context.Context, filename string, data []byte) (Report, error) {
	rep, _, err := im.run(ctx, filename, data, true)
	if err != nil {
		return rep, err
	}
	for _, o := range im.observers {
		if oerr := o.ImportCommitted(ctx, rep); oerr != nil {
			im.log.WithError(oerr).WithField("import_id", rep.ID).Warn("import observer failed")
		}
	}
	return rep, nil
}

// Preview runs the pipeline without committing and returns the first
// normalized products.
func (im *Importer) Preview(ctx context.Context, filename string, data []byte) (Preview, error) {
	rep, products, err := im.run(ctx, filename, data, false)
	if err != nil {
		return Preview{Report: rep}, err
	}
	if n := im.previewRows; n > 0 && len(products) > n {
		products = products[:n]
	}
	return Preview{Report: rep, Products: products}, nil
}

func (im *Importer) run(ctx context.Context, filename string, data []byte, commit bool) (rep Report, accepted []models.Product, err error) {
	rep = Report{ID: uuid.NewString(), Filename: filename, StartedAt: im.now()}
	log := im.log.WithFields(logrus.Fields{"import_id": rep.ID, "filename": filename, "dry_run": !commit})

	stage := StageStart
	enter := func(s Stage) {
		stage = s
		log.WithField("stage", s).Debug("import stage")
	}
	fail := func(kind Kind, cause error) error {
		var ie *Error
		if !errors.As(cause, &ie) {
			ie = &Error{Kind: kind, Err: cause}
		}
		ie.Stage = stage
		log.WithError(ie).WithFields(logrus.Fields{"stage": StageFailed, "failed_at": stage}).Error("import failed")
		return ie
	}

	defer func() {
		rep.FinishedAt = im.now()
		if r := recover(); r != nil {
			kind := KindUnreadableFormat
			if stage == StageCommitting {
				kind = KindStoreCommitFailure
			}
			rep.Committed = false
			accepted = nil
			err = fail(kind, fmt.Errorf("panic: %v", r))
		}
	}()

	log.WithField("stage", stage).Info("import started")

	enter(StageDetecting)
	table, err := im.detector.Detect(data, filename)
	if err != nil {
		return rep, nil, fail(KindUnreadableFormat, err)
	}
	rep.Source = table.Source
	rep.Rows = len(table.Rows)
	log.WithFields(logrus.Fields{
		"format":    table.Source.Format,
		"encoding":  table.Source.Encoding,
		"delimiter": table.Source.Delimiter,
		"rows":      rep.Rows,
	}).Info("format detected")

	enter(StageMapping)
	rep.Mapping, rep.Ignored = im.describeColumns(table.Header)
	raw, err := im.mapper.Map(table)
	if err != nil {
		return rep, nil, fail(KindMissingRequiredColumns, err)
	}

	enter(StageNormalizing)
	records := im.normalizer.NormalizeAll(raw)

	enter(StageValidating)
	v := im.validator.Validate(records)
	rep.Dropped = v.Dropped
	rep.Duplicates = v.Duplicates
	if len(v.Accepted) == 0 {
		return rep, nil, fail(KindEmptyResultSet, &Error{
			Kind:    KindEmptyResultSet,
			Dropped: len(v.Dropped),
			Err:     fmt.Errorf("%w: %d of %d rows dropped", ErrEmptyResultSet, len(v.Dropped), rep.Rows),
		})
	}
	rep.Imported = len(v.Accepted)

	if commit {
		enter(StageCommitting)
		if err := im.store.ReplaceAll(ctx, v.Accepted); err != nil {
			rep.Imported = 0
			return rep, nil, fail(KindStoreCommitFailure, fmt.Errorf("%w: %w", ErrStoreCommitFailure, err))
		}
		rep.Committed = true
	}

	enter(StageDone)
	log.WithFields(logrus.Fields{
		"imported":   rep.Imported,
		"dropped":    len(rep.Dropped),
		"duplicates": rep.Duplicates,
		"committed":  rep.Committed,
	}).Info("import finished")
	return rep, v.Accepted, nil
}

func (im *Importer) describeColumns(header []string) (map[Field]string, []string) {
	mapping := map[Field]string{}
	var ignored []string
	cols := im.mapper.Columns(header)
	used := map[int]bool{}
	for f, idx := range cols {
		mapping[f] = header[idx]
		used[idx] = true
	}
	for i, h := range header {
		if !used[i] && h != "" {
			ignored = append(ignored, h)
		}
	}
	return mapping, ignored
}
