package patient

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	searchResults []Patient
	searchErr     error
	createErr     error
	updateErr     error

	lastCriteria SearchCriteria
	lastUpdateID string
}

func (f *fakeGateway) SearchPatients(ctx context.Context, criteria SearchCriteria) ([]Patient, error) {
	f.lastCriteria = criteria
	return f.searchResults, f.searchErr
}

func (f *fakeGateway) CreateOrFindPatient(ctx context.Context, p Patient) (Patient, error) {
	if f.createErr != nil {
		return Patient{}, f.createErr
	}
	p.ID = "created-1"
	p.PatientID = "PAT-0001"
	return p, nil
}

func (f *fakeGateway) UpdatePatient(ctx context.Context, id string, p Patient) (Patient, error) {
	f.lastUpdateID = id
	if f.updateErr != nil {
		return Patient{}, f.updateErr
	}
	p.ID = id
	return p, nil
}

func newTestDesk(gw *fakeGateway) *Desk {
	return NewDesk(gw, zerolog.Nop())
}

func TestSearchMissSwitchesToRegistration(t *testing.T) {
	gw := &fakeGateway{}
	d := newTestDesk(gw)

	require.NoError(t, d.Search(context.Background(), "555-0101"))

	assert.Equal(t, ModeRegister, d.Mode())
	assert.Equal(t, SearchCriteria{Phone: "555-0101"}, gw.lastCriteria)

	form := d.Form()
	assert.Equal(t, "555-0101", form.Phone)
	assert.Equal(t, "other", form.Gender)
	assert.Empty(t, form.Name)

	_, ok := d.Current()
	assert.False(t, ok)
}

func TestSearchHitLoadsFirstResultForEditing(t *testing.T) {
	gw := &fakeGateway{searchResults: []Patient{
		{ID: "1", Name: "Alice", Phone: "555-0101"},
		{ID: "2", Name: "Alias", Phone: "555-0101"},
	}}
	d := newTestDesk(gw)

	require.NoError(t, d.Search(context.Background(), "555-0101"))

	assert.Equal(t, ModeEdit, d.Mode())
	current, ok := d.Current()
	require.True(t, ok)
	assert.Equal(t, "1", current.ID)
	assert.Equal(t, "Alice", d.Form().Name)
}

func TestSearchErrorPropagates(t *testing.T) {
	gw := &fakeGateway{searchErr: errors.New("down")}
	d := newTestDesk(gw)

	require.Error(t, d.Search(context.Background(), "555-0101"))
	assert.Equal(t, ModeSearch, d.Mode())
}

func TestRegisterResetsDeskOnSuccess(t *testing.T) {
	d := newTestDesk(&fakeGateway{})
	d.StartRegistration()
	d.SetForm(Patient{Name: "Bob", Phone: "555-0202", Gender: "male"})

	created, err := d.Register(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "created-1", created.ID)
	assert.Equal(t, "PAT-0001", created.PatientID)

	assert.Equal(t, ModeSearch, d.Mode())
	assert.Equal(t, NewForm(), d.Form())
}

func TestRegisterFailureKeepsForm(t *testing.T) {
	d := newTestDesk(&fakeGateway{createErr: errors.New("down")})
	d.StartRegistration()
	d.SetForm(Patient{Name: "Bob", Gender: "male"})

	_, err := d.Register(context.Background())
	require.Error(t, err)
	assert.Equal(t, ModeRegister, d.Mode())
	assert.Equal(t, "Bob", d.Form().Name)
}

func TestSaveEditsRequiresLoadedPatient(t *testing.T) {
	d := newTestDesk(&fakeGateway{})
	_, err := d.SaveEdits(context.Background())
	assert.ErrorIs(t, err, ErrNoPatientLoaded)
}

func TestSaveEditsAddressesLoadedPatient(t *testing.T) {
	gw := &fakeGateway{searchResults: []Patient{{ID: "1", Name: "Alice", Phone: "555-0101"}}}
	d := newTestDesk(gw)
	require.NoError(t, d.Search(context.Background(), "555-0101"))

	form := d.Form()
	form.Email = "alice@example.com"
	d.SetForm(form)

	updated, err := d.SaveEdits(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1", gw.lastUpdateID)
	assert.Equal(t, "alice@example.com", updated.Email)
	assert.Equal(t, ModeSearch, d.Mode())
}

func TestSetFormCannotChangeLoadedID(t *testing.T) {
	gw := &fakeGateway{searchResults: []Patient{{ID: "1", Name: "Alice"}}}
	d := newTestDesk(gw)
	require.NoError(t, d.Search(context.Background(), "555-0101"))

	d.SetForm(Patient{ID: "forged", Name: "Alice"})
	assert.Equal(t, "1", d.Form().ID)
}
