package storage

import (
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/pixil98/go-errors"
)

// Template ids such as "gold_001" and "iron-longsword" are both legal.
var identifierPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]*$`)

type ValidatingSpec interface {
	Validate() error
}

// Identifier is the key of an asset record. Identifiers are matched
// case-insensitively.
type Identifier string

func (id Identifier) String() string {
	return string(id)
}

// Equal reports whether two identifiers name the same record.
func (id Identifier) Equal(other Identifier) bool {
	return strings.EqualFold(string(id), string(other))
}

type Asset[T ValidatingSpec] struct {
	Version    uint       `json:"version"`
	Identifier Identifier `json:"id"`
	Spec       T          `json:"spec"`
}

func (a *Asset[T]) Id() Identifier {
	return a.Identifier
}

func (a *Asset[T]) Validate() error {
	el := errors.NewErrorList()

	if a.Version == 0 {
		el.Add(fmt.Errorf("version must be set"))
	}

	if a.Identifier == "" {
		el.Add(fmt.Errorf("id must be set"))
	}

	if !identifierPattern.MatchString(a.Identifier.String()) {
		el.Add(fmt.Errorf("id must be alphanumeric"))
	}

	el.Add(a.Spec.Validate())

	return el.Err()
}

// Getter looks records up by id. It returns the zero value when the id is unknown.
type Getter[T any] interface {
	Get(string) T
}

// SmartIdentifier is a foreign key to another asset that remembers the
// record it resolved to.
type SmartIdentifier[T ValidatingSpec] struct {
	key string
	val T
}

func NewSmartIdentifier[T ValidatingSpec](key string) SmartIdentifier[T] {
	return SmartIdentifier[T]{key: key}
}

func NewResolvedSmartIdentifier[T ValidatingSpec](key string, val T) SmartIdentifier[T] {
	return SmartIdentifier[T]{key: key, val: val}
}

func (id *SmartIdentifier[T]) UnmarshalJSON(b []byte) error {
	return json.Unmarshal(b, &id.key)
}

func (id SmartIdentifier[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.key)
}

func (id SmartIdentifier[T]) Validate() error {
	if id.key == "" {
		return fmt.Errorf("%s identifier is required", typeName[T]())
	}
	return nil
}

// Resolve looks the key up in st and caches the result.
func (id *SmartIdentifier[T]) Resolve(st Getter[T]) error {
	id.val = st.Get(id.key)
	if !id.Resolved() {
		return fmt.Errorf("%s %q not found", typeName[T](), id.key)
	}
	return nil
}

// Resolved reports whether the identifier holds a record.
func (id SmartIdentifier[T]) Resolved() bool {
	v := reflect.ValueOf(id.val)
	if !v.IsValid() {
		return false
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		return !v.IsNil()
	}
	return true
}

// Id returns the key.
func (id SmartIdentifier[T]) Id() string {
	return id.key
}

// Get returns the resolved record, or the zero value if unresolved.
func (id SmartIdentifier[T]) Get() T {
	return id.val
}

func typeName[T any]() string {
	t := reflect.TypeFor[T]()
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}
