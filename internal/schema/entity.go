package schema

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wrenframe/wren/generator"
)

// RelationKind classifies a relation declaration.
type RelationKind int

const (
	BelongsTo RelationKind = iota
	HasMany
	ManyToMany
)

func (k RelationKind) String() string {
	switch k {
	case BelongsTo:
		return "belongs_to"
	case HasMany:
		return "has_many"
	case ManyToMany:
		return "m2m"
	}
	return "unknown"
}

// RuleKind identifies a validation rule.
type RuleKind int

const (
	RuleMin RuleKind = iota
	RuleMax
	RuleEmail
	RuleURL
	RuleRegex
	RuleRequired
	RuleUnique
)

// ValidationRule is a single parsed validation annotation.
type ValidationRule struct {
	Kind    RuleKind
	Limit   uint64 // RuleMin, RuleMax
	Pattern string // RuleRegex
}

// VisibilityKind restricts who may read a field through generated handlers.
type VisibilityKind int

const (
	Public VisibilityKind = iota
	Authenticated
	AdminOnly
	RoleSet
)

// Visibility is a field's access level; Roles is non-empty iff Kind == RoleSet.
type Visibility struct {
	Kind  VisibilityKind
	Roles []string
}

// FieldDefinition is one parsed field of an entity.
type FieldDefinition struct {
	Name       string
	Type       FieldType
	Optional   bool
	Relation   string // BelongsTo target entity, "" if none
	Rules      []ValidationRule
	Searchable bool
	Visibility Visibility
}

// RelationDefinition is one relation declared on an entity.
type RelationDefinition struct {
	Name     string
	Kind     RelationKind
	Target   string
	FKColumn string // column on the declaring side, BelongsTo only
	Optional bool
}

// EntityDefinition is a fully parsed entity: canonical name, ordered fields,
// ordered relations.
type EntityDefinition struct {
	Name      string
	Fields    []FieldDefinition
	Relations []RelationDefinition
}

// SnakeName returns the entity name in snake_case (table/file naming).
func (e *EntityDefinition) SnakeName() string { return generator.SnakeCase(e.Name) }

// PascalName returns the entity name in PascalCase (type naming).
func (e *EntityDefinition) PascalName() string { return generator.PascalCase(e.Name) }

// CamelName returns the entity name in camelCase (identifier naming).
func (e *EntityDefinition) CamelName() string { return generator.CamelCase(e.Name) }

// TableName returns the pluralized snake_case table name.
func (e *EntityDefinition) TableName() string { return generator.Pluralize(e.SnakeName()) }

// ParseError reports a malformed field specification. Token carries the
// offending input so the CLI can point at it.
type ParseError struct {
	Token string
	Msg   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid field spec %q: %s", e.Token, e.Msg)
}

// ParseEntity parses CLI field specs into an EntityDefinition.
//
// Spec grammar: name:type, name:type?, name:type[min=3,max=100],
// name:type->Target, name:has_many->Target, name:m2m->Target.
// The trailing ? marks both the field and any BelongsTo relation optional.
// Any parse failure returns a *ParseError and no partial definition.
func ParseEntity(name string, fieldSpecs []string) (*EntityDefinition, error) {
	entity := &EntityDefinition{Name: name}

	for _, spec := range fieldSpecs {
		body, optional := strings.CutSuffix(spec, "?")

		fieldName, rest, ok := strings.Cut(body, ":")
		if !ok || fieldName == "" || rest == "" {
			return nil, &ParseError{Token: spec, Msg: "expected name:type"}
		}

		// Extract annotations from brackets: type[annotations]->Target
		typeAndTarget := rest
		annotations := ""
		if start := strings.Index(rest, "["); start != -1 {
			end := strings.Index(rest, "]")
			if end == -1 || end < start {
				return nil, &ParseError{Token: spec, Msg: "unterminated [annotations] list"}
			}
			annotations = rest[start+1 : end]
			typeAndTarget = rest[:start] + rest[end+1:]
		}

		typeToken, target, _ := strings.Cut(typeAndTarget, "->")

		// Relation pseudo-types declare a relation and no column.
		switch strings.ToLower(typeToken) {
		case "has_many":
			if target == "" {
				return nil, &ParseError{Token: spec, Msg: "has_many requires a target: " + fieldName + ":has_many->Entity"}
			}
			entity.Relations = append(entity.Relations, RelationDefinition{
				Name:   fieldName,
				Kind:   HasMany,
				Target: target,
			})
			continue
		case "m2m":
			if target == "" {
				return nil, &ParseError{Token: spec, Msg: "m2m requires a target: " + fieldName + ":m2m->Entity"}
			}
			entity.Relations = append(entity.Relations, RelationDefinition{
				Name:   fieldName,
				Kind:   ManyToMany,
				Target: target,
			})
			continue
		}

		fieldType, err := parseFieldType(typeToken)
		if err != nil {
			return nil, &ParseError{Token: spec, Msg: err.Error()}
		}

		if target != "" {
			entity.Relations = append(entity.Relations, RelationDefinition{
				Name:     fieldName,
				Kind:     BelongsTo,
				Target:   target,
				FKColumn: fieldName,
				Optional: optional,
			})
		}

		entity.Fields = append(entity.Fields, FieldDefinition{
			Name:       fieldName,
			Type:       fieldType,
			Optional:   optional,
			Relation:   target,
			Rules:      parseRules(annotations),
			Searchable: hasAnnotation(annotations, "searchable"),
			Visibility: parseVisibility(annotations),
		})
	}

	return entity, nil
}

// parseFieldType resolves a type token through the case-insensitive alias table.
func parseFieldType(token string) (FieldType, error) {
	lower := strings.ToLower(token)

	if strings.HasPrefix(lower, "enum(") && strings.HasSuffix(lower, ")") {
		inner := token[len("enum(") : len(token)-1]
		var variants []string
		for _, v := range strings.Split(inner, ",") {
			if v = strings.TrimSpace(v); v != "" {
				variants = append(variants, v)
			}
		}
		if len(variants) == 0 {
			return FieldType{}, fmt.Errorf("enum requires at least one variant: enum(a,b,c)")
		}
		return FieldType{Kind: KindEnum, Variants: variants}, nil
	}

	var kind FieldKind
	switch lower {
	case "string", "str":
		kind = KindString
	case "text":
		kind = KindText
	case "bool", "boolean":
		kind = KindBool
	case "i32", "int", "int32", "integer":
		kind = KindInt32
	case "i64", "int64", "bigint":
		kind = KindInt64
	case "f64", "float", "float64", "double":
		kind = KindFloat64
	case "decimal", "money":
		kind = KindDecimal
	case "uuid":
		kind = KindUUID
	case "datetime", "timestamp":
		kind = KindDateTime
	case "date":
		kind = KindDate
	case "json", "jsonb":
		kind = KindJSON
	case "file":
		kind = KindFile
	case "image":
		kind = KindImage
	default:
		return FieldType{}, fmt.Errorf("unknown field type %q", token)
	}
	return FieldType{Kind: kind}, nil
}

// parseRules extracts validation rules from a bracket annotation list like
// min=3,max=100,email. Visibility and searchable annotations are handled
// separately; unknown annotations are ignored.
func parseRules(annotations string) []ValidationRule {
	var rules []ValidationRule

	for _, part := range strings.Split(annotations, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if key, value, ok := strings.Cut(part, "="); ok {
			value = strings.TrimSpace(value)
			switch strings.TrimSpace(key) {
			case "min":
				if n, err := strconv.ParseUint(value, 10, 64); err == nil {
					rules = append(rules, ValidationRule{Kind: RuleMin, Limit: n})
				}
			case "max":
				if n, err := strconv.ParseUint(value, 10, 64); err == nil {
					rules = append(rules, ValidationRule{Kind: RuleMax, Limit: n})
				}
			case "regex":
				rules = append(rules, ValidationRule{Kind: RuleRegex, Pattern: value})
			}
		} else {
			switch part {
			case "email":
				rules = append(rules, ValidationRule{Kind: RuleEmail})
			case "url":
				rules = append(rules, ValidationRule{Kind: RuleURL})
			case "required":
				rules = append(rules, ValidationRule{Kind: RuleRequired})
			case "unique":
				rules = append(rules, ValidationRule{Kind: RuleUnique})
			}
		}
	}

	return rules
}

// parseVisibility extracts the field access level from bracket annotations.
// roles values are semicolon-delimited to avoid colliding with the outer
// comma delimiter: roles=hr;admin.
func parseVisibility(annotations string) Visibility {
	for _, part := range strings.Split(annotations, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		switch part {
		case "admin_only":
			return Visibility{Kind: AdminOnly}
		case "authenticated":
			return Visibility{Kind: Authenticated}
		}

		if key, value, ok := strings.Cut(part, "="); ok && strings.TrimSpace(key) == "roles" {
			var roles []string
			for _, r := range strings.Split(value, ";") {
				if r = strings.TrimSpace(r); r != "" {
					roles = append(roles, r)
				}
			}
			if len(roles) > 0 {
				return Visibility{Kind: RoleSet, Roles: roles}
			}
		}
	}

	return Visibility{Kind: Public}
}

func hasAnnotation(annotations, name string) bool {
	for _, part := range strings.Split(annotations, ",") {
		if strings.TrimSpace(part) == name {
			return true
		}
	}
	return false
}
