package tariff

import "context"

type TariffRepository interface {
	// ListActiveRates returns every active rate of the concept. An unknown
	// concept yields an empty slice.
	ListActiveRates(ctx context.Context, code ConceptCode) ([]Rate, error)

	UpsertConcept(ctx context.Context, concept Concept) (Concept, error)

	// ReplaceRate deactivates the active rate with the same concept, scope and
	// effective_from, then inserts rate.
	ReplaceRate(ctx context.Context, rate Rate) (Rate, error)
}
