package models

// CatalogRecordKind distinguishes the two families of catalog imagery.
type CatalogRecordKind string

const (
	CatalogRecordKindPortrait CatalogRecordKind = "portrait"
	CatalogRecordKindWeapon   CatalogRecordKind = "weapon"
)

// CatalogFilter narrows a catalog query. Zero-valued fields are ignored.
// Callers must tolerate fewer results than requested, including zero results
// for a filter combination.
type CatalogFilter struct {
	Kind     CatalogRecordKind
	Count    int
	SceneTag string
	Style    string
	Genders  []string
}

// CatalogRecord is a pre-existing, read-only reference entry used to decorate
// generated entities and weapons with imagery. The pipeline never mutates records;
// "claimed" bookkeeping is local to a single pipeline run.
type CatalogRecord struct {
	ID           string            `db:"id"`
	Kind         CatalogRecordKind `db:"kind"`
	ImageURL     string            `db:"image_url"`
	Gender       string            `db:"gender"`
	Age          int               `db:"age"`
	OccupationEn string            `db:"occupation_en"`
	OccupationFi string            `db:"occupation_fi"`
	Tags         string            `db:"tags"`
	Style        string            `db:"style"`
}
