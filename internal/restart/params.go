package restart

import (
	"errors"
	"fmt"

	"github.com/fentz26/dnsrun/internal/namelist"
	"github.com/fentz26/dnsrun/internal/rundir"
)

// Namelist groups and keys read or written by the engine.
const (
	groupInitiation   = "initiation"
	groupTermination  = "termination"
	groupOutput       = "output"
	groupPhysics      = "physics"
	groupTimeStepping = "time_stepping"

	keyIC         = "ic"
	keyIStart     = "i_start"
	keyTStart     = "t_start"
	keyIFinish    = "i_finish"
	keySaveFields = "i_save_fields"
	keySigmaR     = "sigma_r"
	keyRe         = "re"
	keyHa         = "ha"
	keyTiltAngle  = "tilt_angle"
	keyDt         = "dt"
)

// ParameterStore reads and writes a run's parameter set as one document.
type ParameterStore interface {
	Load(d rundir.Dir) (*namelist.Document, error)
	Save(d rundir.Dir, doc *namelist.Document) error
}

// Option is a value that may be absent from the parameter set.
type Option[T any] struct {
	value T
	ok    bool
}

// Some wraps a present value.
func Some[T any](v T) Option[T] { return Option[T]{value: v, ok: true} }

// Get returns the value and whether it is present.
func (o Option[T]) Get() (T, bool) { return o.value, o.ok }

// Or returns the value, or def when absent.
func (o Option[T]) Or(def T) T {
	if o.ok {
		return o.value
	}
	return def
}

// Damping is the Rayleigh damping setting. The solver accepts either a
// coefficient or a logical switch; .false. and 0 both mean off.
type Damping struct {
	Enabled bool    `json:"enabled"`
	Sigma   float64 `json:"sigma"`
}

// Physics holds the physical constants of a run. Optional entries are
// resolved once here; their defaults are Ha 0, damping off, tilt angle 0.
type Physics struct {
	Re        float64         `json:"re"`
	Ha        Option[float64] `json:"-"`
	Damping   Option[Damping] `json:"-"`
	TiltAngle Option[float64] `json:"-"`
}

// ReadPhysics extracts the physics group from doc.
func ReadPhysics(doc *namelist.Document) (Physics, error) {
	var p Physics
	re, err := doc.Float(groupPhysics, keyRe)
	if err != nil {
		return p, requiredParameter(err)
	}
	p.Re = re

	if p.Ha, err = optionalFloat(doc, groupPhysics, keyHa); err != nil {
		return p, err
	}
	if p.TiltAngle, err = optionalFloat(doc, groupPhysics, keyTiltAngle); err != nil {
		return p, err
	}

	if raw, ok := doc.Lookup(groupPhysics, keySigmaR); ok {
		if sigma, ok := namelist.ParseReal(raw); ok {
			p.Damping = Some(Damping{Enabled: sigma != 0, Sigma: sigma})
		} else if on, ok := namelist.ParseLogical(raw); ok {
			p.Damping = Some(Damping{Enabled: on})
		} else {
			return p, fmt.Errorf("%s.%s: not a real or logical: %q", groupPhysics, keySigmaR, raw)
		}
	}
	return p, nil
}

func optionalFloat(doc *namelist.Document, group, key string) (Option[float64], error) {
	if !doc.Has(group, key) {
		return Option[float64]{}, nil
	}
	v, err := doc.Float(group, key)
	if err != nil {
		return Option[float64]{}, err
	}
	return Some(v), nil
}

func optionalInt(doc *namelist.Document, group, key string) (Option[int64], error) {
	if !doc.Has(group, key) {
		return Option[int64]{}, nil
	}
	v, err := doc.Int(group, key)
	if err != nil {
		return Option[int64]{}, err
	}
	return Some(v), nil
}

// saveInterval returns output.i_save_fields, which must be positive.
func saveInterval(doc *namelist.Document) (int64, error) {
	n, err := doc.Int(groupOutput, keySaveFields)
	if err != nil {
		return 0, requiredParameter(err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidSaveInterval, n)
	}
	return n, nil
}

// ResumptionStep is the step a snapshot was saved at.
func ResumptionStep(doc *namelist.Document, snap rundir.Snapshot) (int64, error) {
	n, err := saveInterval(doc)
	if err != nil {
		return 0, err
	}
	return int64(snap.Index) * n, nil
}

// setStart points the initiation group at a restart state.
func setStart(doc *namelist.Document, ic, iStart int64, tStart float64) {
	doc.SetInt(groupInitiation, keyIC, ic)
	doc.SetInt(groupInitiation, keyIStart, iStart)
	doc.SetFloat(groupInitiation, keyTStart, tStart)
}

// adjust applies the optional end-step extension and damping switch shared
// by every planner. It returns the new i_finish when one was requested.
func adjust(doc *namelist.Document, extraFinishSteps *int64, disableDamping bool) (Option[int64], error) {
	var finish Option[int64]
	if extraFinishSteps != nil {
		current, err := doc.Int(groupTermination, keyIFinish)
		if err != nil {
			return finish, requiredParameter(err)
		}
		finish = Some(current + *extraFinishSteps)
		doc.SetInt(groupTermination, keyIFinish, current+*extraFinishSteps)
	}
	if disableDamping {
		doc.SetBool(groupPhysics, keySigmaR, false)
	}
	return finish, nil
}

func requiredParameter(err error) error {
	if errors.Is(err, namelist.ErrNotFound) {
		return fmt.Errorf("%w: %v", ErrMissingParameter, err)
	}
	return err
}
