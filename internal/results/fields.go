package results

// Field describes a sortable column: how to read its raw value from a
// record and how to classify it.
type Field struct {
	Name string
	Kind Kind
	// Identity fields (roll, name) stay sortable for students who did not
	// attend; every other field puts them at the bottom.
	Identity bool
	Value    func(*Record) any
}

// FieldRegistry maps sort field names to their accessors.
type FieldRegistry map[string]Field

// Register adds or replaces a field.
func (fr FieldRegistry) Register(f Field) { fr[f.Name] = f }

// Lookup resolves name, checking the dataset's subject keys first.
func (fr FieldRegistry) Lookup(name string, subjects []string) (Field, bool) {
	for _, s := range subjects {
		if s == name {
			return SubjectField(name), true
		}
	}
	f, ok := fr[name]
	return f, ok
}

// SubjectField sorts by a subject's term total.
func SubjectField(subject string) Field {
	return Field{
		Name: subject,
		Kind: Numeric,
		Value: func(r *Record) any {
			s, ok := r.Subjects[subject]
			if !ok {
				return nil
			}
			return s.TermTotal
		},
	}
}

func ptrValue(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

// Names of the built-in sort fields.
const (
	FieldRoll                 = "roll"
	FieldName                 = "name"
	FieldGPA                  = "gpa"
	FieldGPAWithoutAdditional = "gpaWithoutAdditional"
	FieldTotalMark            = "totalMark"
	FieldGlobalRank           = "global"
	FieldSectionRank          = "section"
)

// DefaultFields returns a registry holding the built-in fields.
func DefaultFields() FieldRegistry {
	fr := FieldRegistry{}
	fr.Register(Field{Name: FieldRoll, Kind: Numeric, Identity: true, Value: func(r *Record) any { return r.Roll }})
	fr.Register(Field{Name: FieldName, Kind: Textual, Identity: true, Value: func(r *Record) any { return r.Name }})
	fr.Register(Field{Name: FieldGPA, Kind: Numeric, Value: func(r *Record) any { return ptrValue(r.GPA) }})
	fr.Register(Field{Name: FieldGPAWithoutAdditional, Kind: Numeric, Value: func(r *Record) any { return ptrValue(r.GPAWithoutAdditional) }})
	fr.Register(Field{Name: FieldTotalMark, Kind: Numeric, Value: func(r *Record) any { return ptrValue(r.TotalMark) }})
	fr.Register(Field{Name: FieldGlobalRank, Kind: Numeric, Value: func(r *Record) any { return ptrValue(r.Ranking.Global) }})
	fr.Register(Field{Name: FieldSectionRank, Kind: Numeric, Value: func(r *Record) any { return ptrValue(r.Ranking.Section) }})
	return fr
}
