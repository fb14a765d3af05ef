package appointment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleList() []Appointment {
	return []Appointment{
		{ID: "1", Patient: PartyRef{Name: "Alice Smith", PatientID: "PAT-0001"}, Doctor: PartyRef{ID: "doc-a"}, Status: StatusPending},
		{ID: "2", Patient: PartyRef{Name: "Bob Jones", PatientID: "PAT-0002"}, Doctor: PartyRef{ID: "doc-b"}, Status: StatusConfirmed},
		{ID: "3", Patient: PartyRef{Name: "alice cooper", PatientID: "PAT-0003"}, Doctor: PartyRef{ID: "doc-a"}, Status: StatusCancelled},
	}
}

func TestFilterZeroViewKeepsEverything(t *testing.T) {
	got := Filter(sampleList(), View{})
	require.Len(t, got, 3)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "2", got[1].ID)
	assert.Equal(t, "3", got[2].ID)
}

func TestFilterByDoctor(t *testing.T) {
	got := Filter(sampleList(), View{DoctorID: "doc-a"})
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "3", got[1].ID)
}

func TestFilterSearchIsCaseInsensitive(t *testing.T) {
	got := Filter(sampleList(), View{Search: "ALICE"})
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "3", got[1].ID)
}

func TestFilterSearchMatchesPatientDisplayID(t *testing.T) {
	got := Filter(sampleList(), View{Search: "pat-0002"})
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)
}

func TestFilterByStatus(t *testing.T) {
	got := Filter(sampleList(), View{Status: string(StatusConfirmed)})
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)

	assert.Len(t, Filter(sampleList(), View{Status: StatusAll}), 3)
}

func TestFilterCombines(t *testing.T) {
	got := Filter(sampleList(), View{DoctorID: "doc-a", Search: "alice", Status: string(StatusCancelled)})
	require.Len(t, got, 1)
	assert.Equal(t, "3", got[0].ID)
}

func TestFilterIsPure(t *testing.T) {
	list := sampleList()
	Filter(list, View{Status: string(StatusPending)})
	assert.Equal(t, sampleList(), list)
}
