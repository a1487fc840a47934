package tool

import "encoding/json"

// Schema describes a tool's accepted arguments. It is rendered into the
// argument-resolution prompt and consulted during validation.
type Schema struct {
	// Description summarizes the tool for the model.
	Description string

	// Params lists the accepted arguments in declaration order.
	Params []Param
}

// Param describes one tool argument.
type Param struct {
	// Name is the canonical argument key. Resolved arguments must use this
	// key exactly; localized labels are translated back by the executor's
	// alias table.
	Name string

	// Type is the advertised value type ("str", "int", "dict").
	Type string

	// Description explains the argument to the model.
	Description string

	// Enum lists the allowed values, if the argument is enumerated.
	Enum []EnumValue

	// Optional marks arguments the model may omit.
	Optional bool

	// FreeText marks arguments that legitimately carry prose (report
	// bodies, search queries). Free-text arguments are exempt from the
	// placeholder-keyword validation heuristic.
	FreeText bool
}

// EnumValue is one allowed value of an enumerated argument.
type EnumValue struct {
	Value       string
	Description string
}

// FreeTextParams returns the names of the schema's free-text arguments.
func (s Schema) FreeTextParams() []string {
	var names []string
	for _, p := range s.Params {
		if p.FreeText {
			names = append(names, p.Name)
		}
	}
	return names
}

// Values returns the allowed values of the named argument, or nil when the
// argument is not enumerated.
func (s Schema) Values(param string) []string {
	for _, p := range s.Params {
		if p.Name != param {
			continue
		}
		vals := make([]string, 0, len(p.Enum))
		for _, e := range p.Enum {
			vals = append(vals, e.Value)
		}
		return vals
	}
	return nil
}

// contractJSON mirrors the shape the schema takes inside resolution prompts.
// encoding/json sorts map keys, so the rendered contract is deterministic.
func (s Schema) contractJSON() map[string]any {
	params := map[string]any{}
	for _, p := range s.Params {
		entry := map[string]any{
			"type":        p.Type,
			"description": p.Description,
		}
		if len(p.Enum) > 0 {
			enum := make([]map[string]string, 0, len(p.Enum))
			for _, e := range p.Enum {
				enum = append(enum, map[string]string{
					"value":       e.Value,
					"description": e.Description,
				})
			}
			entry["enum"] = enum
		}
		params[p.Name] = entry
	}
	return map[string]any{
		"description": s.Description,
		"parameters":  params,
	}
}

// ContractText renders the argument contract of every given tool as an
// indented JSON document for embedding in argument-resolution prompts.
func ContractText(tools []Tool) string {
	contract := map[string]any{}
	for _, t := range tools {
		contract[t.Name()] = t.Schema().contractJSON()
	}
	out, err := json.MarshalIndent(contract, "", "    ")
	if err != nil {
		// Schemas are static data assembled from literals; this cannot
		// fail for any registered tool.
		return "{}"
	}
	return string(out)
}
