package project

// Anchor lines embedded verbatim in generated files. New lines are always
// spliced immediately before an anchor and the anchor itself is never
// removed, so every aggregator file stays injectable forever.
const (
	// MarkerRoutes sits in the routes aggregator where per-entity route
	// registrations accumulate.
	MarkerRoutes = "// === WREN:ROUTES ==="

	// MarkerSeeds sits in the seeder registry; each generated entity
	// contributes one seeder entry.
	MarkerSeeds = "// === WREN:SEEDS ==="

	// MarkerRelations sits in each entity's model file; reverse and
	// via-junction relation declarations land here.
	MarkerRelations = "// === WREN:RELATIONS ==="

	// MarkerRelationHandlers sits in each entity's handler file; injected
	// "list related" and junction add/remove handlers land here.
	MarkerRelationHandlers = "// === WREN:RELATION_HANDLERS ==="

	// MarkerRelationRoutes sits in each entity's route file; injected
	// relation route registrations land here.
	MarkerRelationRoutes = "// === WREN:RELATION_ROUTES ==="
)
