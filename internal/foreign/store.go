package foreign

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/amber-lang/amber/internal/types"
)

// Store is a sqlite-backed cache of introspected class metadata. Running the
// introspection tool over a large classpath is slow; the build writes its
// output into a store once and later runs load the registry from it.
type Store struct {
	db *sql.DB
}

const storeSchema = `
CREATE TABLE IF NOT EXISTS classes (
	name          TEXT PRIMARY KEY,
	internal_name TEXT NOT NULL,
	is_interface  INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS methods (
	class      TEXT NOT NULL,
	name       TEXT NOT NULL,
	descriptor TEXT NOT NULL,
	kind       TEXT NOT NULL CHECK (kind IN ('instance', 'static', 'abstract')),
	PRIMARY KEY (class, name, kind)
);
CREATE TABLE IF NOT EXISTS fields (
	class      TEXT NOT NULL,
	name       TEXT NOT NULL,
	descriptor TEXT NOT NULL,
	is_static  INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (class, name)
);
CREATE TABLE IF NOT EXISTS constructors (
	class      TEXT PRIMARY KEY,
	descriptor TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS interfaces (
	class TEXT NOT NULL,
	name  TEXT NOT NULL,
	PRIMARY KEY (class, name)
);
`

// OpenStore opens (creating if needed) a metadata store at path.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening metadata store %s: %w", path, err)
	}
	if _, err := db.Exec(storeSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing metadata store %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save writes every class of the registry into the store, replacing earlier
// rows for the same classes.
func (s *Store) Save(r *Registry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, name := range r.ClassNames() {
		info, _ := r.Class(name)
		if err := saveClass(tx, info); err != nil {
			return fmt.Errorf("saving class %s: %w", name, err)
		}
	}
	return tx.Commit()
}

func saveClass(tx *sql.Tx, info *ClassInfo) error {
	isInterface := 0
	if info.IsInterface {
		isInterface = 1
	}
	if _, err := tx.Exec(
		`INSERT OR REPLACE INTO classes (name, internal_name, is_interface) VALUES (?, ?, ?)`,
		info.Name, info.InternalName, isInterface,
	); err != nil {
		return err
	}

	for _, tbl := range []struct {
		kind    string
		methods map[string]MethodInfo
	}{
		{"instance", info.Methods},
		{"static", info.StaticMethods},
		{"abstract", info.AbstractMethods},
	} {
		for _, m := range tbl.methods {
			if _, err := tx.Exec(
				`INSERT OR REPLACE INTO methods (class, name, descriptor, kind) VALUES (?, ?, ?, ?)`,
				info.Name, m.Name, m.Descriptor, tbl.kind,
			); err != nil {
				return err
			}
		}
	}

	for _, f := range info.Fields {
		if _, err := tx.Exec(
			`INSERT OR REPLACE INTO fields (class, name, descriptor, is_static) VALUES (?, ?, ?, 0)`,
			info.Name, f.Name, f.Descriptor,
		); err != nil {
			return err
		}
	}
	for _, f := range info.StaticFields {
		if _, err := tx.Exec(
			`INSERT OR REPLACE INTO fields (class, name, descriptor, is_static) VALUES (?, ?, ?, 1)`,
			info.Name, f.Name, f.Descriptor,
		); err != nil {
			return err
		}
	}

	if info.HasConstructor {
		desc, err := EncodeMethodDescriptor(info.ConstructorParams, types.Nil)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(
			`INSERT OR REPLACE INTO constructors (class, descriptor) VALUES (?, ?)`,
			info.Name, desc,
		); err != nil {
			return err
		}
	}

	for _, iface := range info.Interfaces {
		if _, err := tx.Exec(
			`INSERT OR REPLACE INTO interfaces (class, name) VALUES (?, ?)`,
			info.Name, iface,
		); err != nil {
			return err
		}
	}
	return nil
}

// Load reads every stored class into a fresh registry.
func (s *Store) Load() (*Registry, error) {
	registry := NewRegistry()

	rows, err := s.db.Query(`SELECT name, internal_name, is_interface FROM classes ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var name, internal string
		var isInterface int
		if err := rows.Scan(&name, &internal, &isInterface); err != nil {
			return nil, err
		}
		registry.add(&ClassInfo{
			Name:            name,
			InternalName:    internal,
			IsInterface:     isInterface != 0,
			Methods:         make(map[string]MethodInfo),
			StaticMethods:   make(map[string]MethodInfo),
			AbstractMethods: make(map[string]MethodInfo),
			Fields:          make(map[string]FieldInfo),
			StaticFields:    make(map[string]FieldInfo),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.loadMethods(registry); err != nil {
		return nil, err
	}
	if err := s.loadFields(registry); err != nil {
		return nil, err
	}
	if err := s.loadConstructors(registry); err != nil {
		return nil, err
	}
	if err := s.loadInterfaces(registry); err != nil {
		return nil, err
	}
	return registry, nil
}

func (s *Store) loadMethods(registry *Registry) error {
	rows, err := s.db.Query(`SELECT class, name, descriptor, kind FROM methods`)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var class, name, descriptor, kind string
		if err := rows.Scan(&class, &name, &descriptor, &kind); err != nil {
			return err
		}
		info, ok := registry.Class(class)
		if !ok {
			return fmt.Errorf("method %s.%s references unknown class", class, name)
		}
		params, ret, err := DecodeMethodDescriptor(descriptor)
		if err != nil {
			return fmt.Errorf("stored method %s.%s: %w", class, name, err)
		}
		m := MethodInfo{Name: name, Descriptor: descriptor, Params: params, Return: ret}
		switch kind {
		case "instance":
			info.Methods[name] = m
		case "static":
			info.StaticMethods[name] = m
		case "abstract":
			info.AbstractMethods[name] = m
			info.Methods[name] = m
		default:
			return fmt.Errorf("stored method %s.%s: unknown kind %q", class, name, kind)
		}
	}
	return rows.Err()
}

func (s *Store) loadFields(registry *Registry) error {
	rows, err := s.db.Query(`SELECT class, name, descriptor, is_static FROM fields`)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var class, name, descriptor string
		var isStatic int
		if err := rows.Scan(&class, &name, &descriptor, &isStatic); err != nil {
			return err
		}
		info, ok := registry.Class(class)
		if !ok {
			return fmt.Errorf("field %s.%s references unknown class", class, name)
		}
		typ, err := DecodeFieldDescriptor(descriptor)
		if err != nil {
			return fmt.Errorf("stored field %s.%s: %w", class, name, err)
		}
		f := FieldInfo{Name: name, Descriptor: descriptor, Type: typ}
		if isStatic != 0 {
			info.StaticFields[name] = f
		} else {
			info.Fields[name] = f
		}
	}
	return rows.Err()
}

func (s *Store) loadConstructors(registry *Registry) error {
	rows, err := s.db.Query(`SELECT class, descriptor FROM constructors`)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var class, descriptor string
		if err := rows.Scan(&class, &descriptor); err != nil {
			return err
		}
		info, ok := registry.Class(class)
		if !ok {
			return fmt.Errorf("constructor of %s references unknown class", class)
		}
		params, _, err := DecodeMethodDescriptor(descriptor)
		if err != nil {
			return fmt.Errorf("stored constructor of %s: %w", class, err)
		}
		info.ConstructorParams = params
		info.HasConstructor = true
	}
	return rows.Err()
}

func (s *Store) loadInterfaces(registry *Registry) error {
	rows, err := s.db.Query(`SELECT class, name FROM interfaces ORDER BY name`)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var class, name string
		if err := rows.Scan(&class, &name); err != nil {
			return err
		}
		info, ok := registry.Class(class)
		if !ok {
			return fmt.Errorf("interface entry of %s references unknown class", class)
		}
		info.Interfaces = append(info.Interfaces, name)
	}
	return rows.Err()
}
