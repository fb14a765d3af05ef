package stubapi

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/medicore/hospital-desk/internal/appointment"
	"github.com/medicore/hospital-desk/internal/callrequest"
	"github.com/medicore/hospital-desk/internal/patient"
	"github.com/medicore/hospital-desk/internal/staff"
)

type user struct {
	staff.Record
	passwordHash string
}

// dataset is the stub server's in-memory state. Unlike the client-side
// stores it is shared across request goroutines, so it locks.
type dataset struct {
	mu           sync.RWMutex
	users        map[string]*user
	patients     map[string]*patient.Patient
	appointments map[string]*appointment.Appointment
	callRequests map[string]*callrequest.CallRequest
	userOrder    []string
	patientOrder []string
	apptOrder    []string
	callOrder    []string
	patientSeq   int
}

func newDataset() *dataset {
	return &dataset{
		users:        make(map[string]*user),
		patients:     make(map[string]*patient.Patient),
		appointments: make(map[string]*appointment.Appointment),
		callRequests: make(map[string]*callrequest.CallRequest),
	}
}

func (d *dataset) addUser(rec staff.Record, passwordHash string) staff.Record {
	d.mu.Lock()
	defer d.mu.Unlock()

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	d.users[rec.ID] = &user{Record: rec, passwordHash: passwordHash}
	d.userOrder = append(d.userOrder, rec.ID)
	return rec
}

func (d *dataset) userByLogin(loginID string, role staff.Role) (*user, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, id := range d.userOrder {
		u := d.users[id]
		if u.LoginID == loginID && u.Role == role {
			return u, true
		}
	}
	return nil, false
}

func (d *dataset) userByID(id string) (*user, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	u, ok := d.users[id]
	return u, ok
}

func (d *dataset) usersByRole(role staff.Role) []staff.Record {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]staff.Record, 0, len(d.userOrder))
	for _, id := range d.userOrder {
		if u := d.users[id]; u.Role == role {
			out = append(out, u.Record)
		}
	}
	return out
}

func (d *dataset) loginTaken(loginID string, role staff.Role) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, u := range d.users {
		if u.LoginID == loginID && u.Role == role {
			return true
		}
	}
	return false
}

func (d *dataset) updateUser(id string, upd staff.Update) (staff.Record, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	u, ok := d.users[id]
	if !ok {
		return staff.Record{}, false
	}
	upd.Apply(&u.Record)
	return u.Record, true
}

func (d *dataset) deleteUser(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.users[id]; !ok {
		return false
	}
	delete(d.users, id)
	d.userOrder = remove(d.userOrder, id)
	return true
}

func (d *dataset) addPatient(p patient.Patient) patient.Patient {
	d.mu.Lock()
	defer d.mu.Unlock()

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.PatientID == "" {
		d.patientSeq++
		p.PatientID = fmt.Sprintf("PAT-%04d", d.patientSeq)
	}
	d.patients[p.ID] = &p
	d.patientOrder = append(d.patientOrder, p.ID)
	return p
}

func (d *dataset) patientByPhone(phone string) (patient.Patient, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, id := range d.patientOrder {
		if p := d.patients[id]; p.Phone == phone {
			return *p, true
		}
	}
	return patient.Patient{}, false
}

func (d *dataset) patientByID(id string) (patient.Patient, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	p, ok := d.patients[id]
	if !ok {
		return patient.Patient{}, false
	}
	return *p, true
}

func (d *dataset) searchPatients(name, phone string) []patient.Patient {
	d.mu.RLock()
	defer d.mu.RUnlock()

	needle := strings.ToLower(name)
	out := []patient.Patient{}
	for _, id := range d.patientOrder {
		p := d.patients[id]
		if phone != "" && p.Phone != phone {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(p.Name), needle) {
			continue
		}
		out = append(out, *p)
	}
	return out
}

func (d *dataset) updatePatient(id string, p patient.Patient) (patient.Patient, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	existing, ok := d.patients[id]
	if !ok {
		return patient.Patient{}, false
	}
	p.ID = existing.ID
	p.PatientID = existing.PatientID
	*existing = p
	return *existing, true
}

func (d *dataset) addAppointment(a appointment.Appointment) appointment.Appointment {
	d.mu.Lock()
	defer d.mu.Unlock()

	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	d.appointments[a.ID] = &a
	d.apptOrder = append(d.apptOrder, a.ID)
	return a
}

func (d *dataset) appointmentByID(id string) (appointment.Appointment, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	a, ok := d.appointments[id]
	if !ok {
		return appointment.Appointment{}, false
	}
	return *a, true
}

func (d *dataset) listAppointments() []appointment.Appointment {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]appointment.Appointment, 0, len(d.apptOrder))
	for _, id := range d.apptOrder {
		out = append(out, *d.appointments[id])
	}
	return out
}

func (d *dataset) setAppointmentStatus(id string, to appointment.Status) (appointment.Appointment, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	a, ok := d.appointments[id]
	if !ok {
		return appointment.Appointment{}, appointment.ErrUnknownAppointment
	}
	if err := appointment.CheckTransition(a.Status, to); err != nil {
		return appointment.Appointment{}, err
	}
	a.Status = to
	return *a, nil
}

func (d *dataset) deleteAppointment(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.appointments[id]; !ok {
		return false
	}
	delete(d.appointments, id)
	d.apptOrder = remove(d.apptOrder, id)
	return true
}

func (d *dataset) addCallRequest(c callrequest.CallRequest) callrequest.CallRequest {
	d.mu.Lock()
	defer d.mu.Unlock()

	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Status == "" {
		c.Status = callrequest.StatusPending
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	d.callRequests[c.ID] = &c
	d.callOrder = append(d.callOrder, c.ID)
	return c
}

func (d *dataset) listCallRequests(status callrequest.Status) []callrequest.CallRequest {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := []callrequest.CallRequest{}
	for _, id := range d.callOrder {
		c := d.callRequests[id]
		if status != "" && c.Status != status {
			continue
		}
		out = append(out, *c)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (d *dataset) attendCallRequest(id string) (callrequest.CallRequest, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	c, ok := d.callRequests[id]
	if !ok {
		return callrequest.CallRequest{}, false
	}
	c.Status = callrequest.StatusCompleted
	return *c, true
}

func (d *dataset) counts() (users, patients, appointments, calls int) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.users), len(d.patients), len(d.appointments), len(d.callRequests)
}

func remove(order []string, id string) []string {
	for i, k := range order {
		if k == id {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}
