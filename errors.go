package invoice2pdf

import (
	"errors"
	"fmt"

	"github.com/alnah/go-invoice2pdf/internal/assets"
	"github.com/alnah/go-invoice2pdf/internal/money"
	"github.com/alnah/go-invoice2pdf/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	// Input validation errors.
	ErrNilInvoice       = errors.New("invoice data is nil")
	ErrEmptyInvoiceNo   = errors.New("invoice number cannot be empty")
	ErrInvalidInvoiceNo = errors.New("invoice number cannot be used as a file name")
	ErrNoServices       = errors.New("invoice has no services")
	ErrInvalidAmount    = money.ErrInvalidAmount

	// Normalization errors.
	ErrUnknownService   = errors.New("unknown service")
	ErrInvalidDateRange = errors.New("service period ends before it starts")
	ErrAssetNotFound    = assets.ErrAssetNotFound
	ErrNotesRender      = pipeline.ErrNotesConversion

	// Template errors.
	ErrTemplateCompile = pipeline.ErrTemplateCompile
	ErrTemplateData    = pipeline.ErrTemplateData

	// Composition errors.
	ErrRenderEngineUnavailable = errors.New("render engine unavailable")
	ErrRenderTimeout           = errors.New("document did not settle before timeout")
	ErrExport                  = errors.New("PDF export failed")

	// Persistence errors.
	ErrWrite = errors.New("failed to write invoice")

	// Configuration errors.
	ErrCatalogNotFound  = errors.New("service catalog not found")
	ErrCatalogParse     = errors.New("failed to parse service catalog")
	ErrInvalidAssetPath = errors.New("invalid asset path")
	ErrInvalidLocale    = errors.New("invalid locale")
	ErrPoolClosed       = errors.New("generator pool is closed")
)

// Stage names a step of the invoice pipeline.
type Stage string

// Pipeline stages, in execution order.
const (
	StageValidate  Stage = "validate"
	StageNormalize Stage = "normalize"
	StageEmbed     Stage = "embed"
	StageNotes     Stage = "notes"
	StageRender    Stage = "render"
	StageCompose   Stage = "compose"
	StageSave      Stage = "save"
)

// StageError reports which stage failed and on which input.
// It unwraps to the underlying sentinel, so errors.Is works through it.
type StageError struct {
	Stage Stage
	Input string // service id, file path or invoice number; may be empty
	Err   error
}

func (e *StageError) Error() string {
	if e.Input == "" {
		return fmt.Sprintf("%s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("%s %q: %v", e.Stage, e.Input, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// stageErr wraps err unless it already carries a stage.
func stageErr(stage Stage, input string, err error) error {
	var se *StageError
	if errors.As(err, &se) {
		return err
	}
	return &StageError{Stage: stage, Input: input, Err: err}
}

// FailedStage returns the stage recorded in err, or "" when err carries none.
func FailedStage(err error) Stage {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage
	}
	return ""
}
