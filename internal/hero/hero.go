package hero

// Hero is the single resource served by the heroes endpoint.
type Hero struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// HeroID is a bare hero identifier.
type HeroID int

// HeroRef identifies a hero either by value or by bare id.
// It is implemented only by Hero and HeroID (and pointers to them).
type HeroRef interface {
	heroID() int
}

func (h Hero) heroID() int    { return h.ID }
func (id HeroID) heroID() int { return int(id) }

// resolveRef returns the canonical id behind ref. Nil refs, typed or not, yield ErrNilRef.
func resolveRef(ref HeroRef) (int, error) {
	switch r := ref.(type) {
	case nil:
		return 0, ErrNilRef
	case Hero:
		return r.ID, nil
	case *Hero:
		if r == nil {
			return 0, ErrNilRef
		}
		return r.ID, nil
	case HeroID:
		return int(r), nil
	case *HeroID:
		if r == nil {
			return 0, ErrNilRef
		}
		return int(*r), nil
	default:
		return ref.heroID(), nil
	}
}
