package schema

// FieldKind is the closed set of primitive field kinds wren understands.
// Every mapping method below must handle every kind; TestMappingsAreTotal
// walks AllKinds to enforce that at test time.
type FieldKind int

const (
	KindString FieldKind = iota
	KindText
	KindBool
	KindInt32
	KindInt64
	KindFloat64
	KindDecimal
	KindUUID
	KindDateTime
	KindDate
	KindJSON
	KindEnum
	KindFile
	KindImage
)

// AllKinds lists every FieldKind, in declaration order.
var AllKinds = []FieldKind{
	KindString, KindText, KindBool, KindInt32, KindInt64, KindFloat64,
	KindDecimal, KindUUID, KindDateTime, KindDate, KindJSON, KindEnum,
	KindFile, KindImage,
}

func (k FieldKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindText:
		return "text"
	case KindBool:
		return "bool"
	case KindInt32:
		return "int32"
	case KindInt64:
		return "int64"
	case KindFloat64:
		return "float64"
	case KindDecimal:
		return "decimal"
	case KindUUID:
		return "uuid"
	case KindDateTime:
		return "datetime"
	case KindDate:
		return "date"
	case KindJSON:
		return "json"
	case KindEnum:
		return "enum"
	case KindFile:
		return "file"
	case KindImage:
		return "image"
	}
	return "unknown"
}

// FieldType is a field's kind plus, for enums, the ordered variant list.
type FieldType struct {
	Kind     FieldKind
	Variants []string // non-empty iff Kind == KindEnum
}

// GoType returns the Go storage type used in generated models.
func (t FieldType) GoType() string {
	switch t.Kind {
	case KindString, KindText, KindEnum, KindFile, KindImage:
		return "string"
	case KindBool:
		return "bool"
	case KindInt32:
		return "int32"
	case KindInt64:
		return "int64"
	case KindFloat64:
		return "float64"
	case KindDecimal:
		return "decimal.Decimal"
	case KindUUID:
		return "uuid.UUID"
	case KindDateTime:
		return "time.Time"
	case KindDate:
		return "time.Time"
	case KindJSON:
		return "json.RawMessage"
	}
	return "any"
}

// TSType returns the TypeScript wire type used in generated API clients.
func (t FieldType) TSType() string {
	switch t.Kind {
	case KindString, KindText, KindUUID, KindEnum, KindFile, KindImage,
		KindDateTime, KindDate:
		return "string"
	case KindBool:
		return "boolean"
	case KindInt32, KindInt64, KindFloat64, KindDecimal:
		return "number"
	case KindJSON:
		return "unknown"
	}
	return "unknown"
}

// SQLType returns the PostgreSQL column type used in generated migrations.
func (t FieldType) SQLType() string {
	switch t.Kind {
	case KindString, KindEnum:
		return "VARCHAR(255)"
	case KindText:
		return "TEXT"
	case KindBool:
		return "BOOLEAN"
	case KindInt32:
		return "INTEGER"
	case KindInt64:
		return "BIGINT"
	case KindFloat64:
		return "DOUBLE PRECISION"
	case KindDecimal:
		return "DECIMAL"
	case KindUUID:
		return "UUID"
	case KindDateTime:
		return "TIMESTAMPTZ"
	case KindDate:
		return "DATE"
	case KindJSON:
		return "JSONB"
	case KindFile, KindImage:
		return "VARCHAR(512)"
	}
	return "TEXT"
}

// MigrationToken returns the schema-builder method token embedded in
// generated migration helper comments (used by the migration templates).
func (t FieldType) MigrationToken() string {
	switch t.Kind {
	case KindString, KindEnum:
		return "string_len(255)"
	case KindText:
		return "text()"
	case KindBool:
		return "boolean()"
	case KindInt32:
		return "integer()"
	case KindInt64:
		return "big_integer()"
	case KindFloat64:
		return "double()"
	case KindDecimal:
		return "decimal()"
	case KindUUID:
		return "uuid()"
	case KindDateTime:
		return "timestamp_with_time_zone()"
	case KindDate:
		return "date()"
	case KindJSON:
		return "json_binary()"
	case KindFile, KindImage:
		return "string_len(512)"
	}
	return "text()"
}

// ControlKind returns the UI control used in generated form templates.
func (t FieldType) ControlKind() string {
	switch t.Kind {
	case KindString, KindUUID, KindInt32, KindInt64, KindFloat64,
		KindDecimal, KindDateTime, KindDate:
		return "Input"
	case KindText, KindJSON:
		return "Textarea"
	case KindBool:
		return "Switch"
	case KindEnum:
		return "Select"
	case KindFile:
		return "FileInput"
	case KindImage:
		return "ImageInput"
	}
	return "Input"
}

// InputType returns the HTML input type attribute for generated forms.
func (t FieldType) InputType() string {
	switch t.Kind {
	case KindInt32, KindInt64, KindFloat64, KindDecimal:
		return "number"
	case KindDate:
		return "date"
	case KindDateTime:
		return "datetime-local"
	case KindFile, KindImage:
		return "file"
	}
	return "text"
}

// IsNumeric reports whether the kind maps to a numeric column.
func (t FieldType) IsNumeric() bool {
	switch t.Kind {
	case KindInt32, KindInt64, KindFloat64, KindDecimal:
		return true
	}
	return false
}

// FilterMethod returns how generated list handlers filter on this field:
// "contains" for free text, "eq" for exact-match kinds, "" for kinds that
// are not filterable.
func (t FieldType) FilterMethod() string {
	switch t.Kind {
	case KindString, KindText:
		return "contains"
	case KindBool, KindInt32, KindInt64, KindUUID, KindEnum, KindDate:
		return "eq"
	}
	return ""
}
