package patient

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
)

// Mode is the state of the reception desk's find-or-register flow.
type Mode int

const (
	// ModeSearch shows only the phone search box.
	ModeSearch Mode = iota
	// ModeEdit shows an existing patient, editable.
	ModeEdit
	// ModeRegister shows the registration form with the searched phone
	// pre-filled.
	ModeRegister
)

var ErrNoPatientLoaded = errors.New("no patient loaded")

type Gateway interface {
	SearchPatients(ctx context.Context, criteria SearchCriteria) ([]Patient, error)
	CreateOrFindPatient(ctx context.Context, p Patient) (Patient, error)
	UpdatePatient(ctx context.Context, id string, p Patient) (Patient, error)
}

// Desk drives the find-or-register flow: a phone search either loads an
// existing patient for editing or turns the same form into a registration
// form. The desk holds at most one patient at a time and discards it after
// each completed operation.
type Desk struct {
	gw      Gateway
	log     zerolog.Logger
	mode    Mode
	current *Patient
	form    Patient
}

func NewDesk(gw Gateway, log zerolog.Logger) *Desk {
	return &Desk{gw: gw, log: log, form: NewForm()}
}

// Search looks up a patient by phone. A non-empty result set loads the first
// entry as canonical and switches to edit mode. An empty result set is not
// an error: it switches to registration mode with the searched phone
// pre-filled and all other fields at their defaults.
func (d *Desk) Search(ctx context.Context, phone string) error {
	results, err := d.gw.SearchPatients(ctx, SearchCriteria{Phone: phone})
	if err != nil {
		return err
	}

	if len(results) == 0 {
		d.log.Debug().Str("phone", phone).Msg("patient not found, switching to registration")
		d.current = nil
		d.form = NewForm()
		d.form.Phone = phone
		d.mode = ModeRegister
		return nil
	}

	found := results[0]
	d.current = &found
	d.form = found
	d.mode = ModeEdit
	return nil
}

// Register submits the form through the server's create-or-find operation.
// The server may return an existing record rather than a new one; the desk
// makes no distinction. On success the desk resets to search mode.
func (d *Desk) Register(ctx context.Context) (Patient, error) {
	created, err := d.gw.CreateOrFindPatient(ctx, d.form)
	if err != nil {
		return Patient{}, err
	}
	d.Reset()
	return created, nil
}

// SaveEdits submits the edited form for the loaded patient and resets to
// search mode on success.
func (d *Desk) SaveEdits(ctx context.Context) (Patient, error) {
	if d.current == nil {
		return Patient{}, ErrNoPatientLoaded
	}
	updated, err := d.gw.UpdatePatient(ctx, d.current.ID, d.form)
	if err != nil {
		return Patient{}, err
	}
	d.Reset()
	return updated, nil
}

// StartRegistration switches to a blank registration form without a prior
// search, for walk-ins.
func (d *Desk) StartRegistration() {
	d.current = nil
	d.form = NewForm()
	d.mode = ModeRegister
}

// SetForm replaces the working form. The canonical ID of a loaded patient is
// not form-editable.
func (d *Desk) SetForm(form Patient) {
	if d.current != nil {
		form.ID = d.current.ID
	}
	d.form = form
}

func (d *Desk) Reset() {
	d.current = nil
	d.form = NewForm()
	d.mode = ModeSearch
}

func (d *Desk) Mode() Mode { return d.mode }

func (d *Desk) Form() Patient { return d.form }

// Current returns the loaded patient, if any.
func (d *Desk) Current() (Patient, bool) {
	if d.current == nil {
		return Patient{}, false
	}
	return *d.current, true
}
