package staff

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/medicore/hospital-desk/internal/store"
)

// Gateway contains the remote API operations the directory needs. The
// concrete implementation lives in internal/hospitalapi.
type Gateway interface {
	RegisterUser(ctx context.Context, rec Record, password string) (Record, error)
	ListUsersByRole(ctx context.Context, role Role) ([]Record, error)
	UpdateUser(ctx context.Context, id string, upd Update) (Record, error)
	DeleteUser(ctx context.Context, id string) error
}

// Directory is the client-side view of one staff role. The cached records
// are only mutated after the gateway acknowledges the corresponding server
// mutation: create adds, list replaces, update patches, delete removes. On a
// gateway failure the cache is left untouched and the error is returned to
// the caller unchanged.
type Directory struct {
	role Role
	gw   Gateway
	recs *store.Store[Record]
	log  zerolog.Logger
}

func NewDirectory(role Role, gw Gateway, log zerolog.Logger) *Directory {
	return &Directory{
		role: role,
		gw:   gw,
		recs: store.New[Record](log),
		log:  log.With().Str("directory", string(role)).Logger(),
	}
}

func (d *Directory) Role() Role { return d.role }

// Refresh replaces the cached records with the server's current list.
func (d *Directory) Refresh(ctx context.Context) error {
	recs, err := d.gw.ListUsersByRole(ctx, d.role)
	if err != nil {
		return err
	}
	d.recs.ReplaceAll(recs)
	return nil
}

// Register creates a staff member server-side and adds the server's
// canonical record to the cache.
func (d *Directory) Register(ctx context.Context, rec Record, password string) (Record, error) {
	rec.Role = d.role
	created, err := d.gw.RegisterUser(ctx, rec, password)
	if err != nil {
		return Record{}, err
	}
	d.recs.Add(created)
	return created, nil
}

// UpdateByID updates a record addressed by canonical ID, as the doctor
// profile self-edit flow does.
func (d *Directory) UpdateByID(ctx context.Context, id string, upd Update) (Record, error) {
	updated, err := d.gw.UpdateUser(ctx, id, upd)
	if err != nil {
		return Record{}, err
	}
	d.recs.Patch(id, func(rec *Record) { upd.Apply(rec) })
	return updated, nil
}

// UpdateByLoginID resolves the login ID against the cache and updates the
// matching record. ID-driven admin forms address staff this way.
func (d *Directory) UpdateByLoginID(ctx context.Context, loginID string, upd Update) (Record, error) {
	rec, ok := d.FindByLoginID(loginID)
	if !ok {
		return Record{}, fmt.Errorf("update %s %q: %w", d.role, loginID, ErrNotInDirectory)
	}
	return d.UpdateByID(ctx, rec.ID, upd)
}

// RemoveByID deletes a record server-side and drops it from the cache.
func (d *Directory) RemoveByID(ctx context.Context, id string) error {
	if err := d.gw.DeleteUser(ctx, id); err != nil {
		return err
	}
	d.recs.Remove(id)
	return nil
}

func (d *Directory) RemoveByLoginID(ctx context.Context, loginID string) error {
	rec, ok := d.FindByLoginID(loginID)
	if !ok {
		return fmt.Errorf("remove %s %q: %w", d.role, loginID, ErrNotInDirectory)
	}
	return d.RemoveByID(ctx, rec.ID)
}

func (d *Directory) FindByLoginID(loginID string) (Record, bool) {
	return d.recs.Find(func(rec Record) bool { return rec.LoginID == loginID })
}

func (d *Directory) Get(id string) (Record, bool) {
	return d.recs.Get(id)
}

// All returns the cached records in insertion order.
func (d *Directory) All() []Record {
	return d.recs.All()
}

func (d *Directory) Len() int {
	return d.recs.Len()
}
