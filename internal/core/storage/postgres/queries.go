package postgres

// queryRecordCatalogRevision records one loaded model definition. A model
// reloaded with an unchanged fingerprint is a no-op.
const queryRecordCatalogRevision = `
	INSERT INTO catalog_revisions (id, model, fingerprint, loaded_at)
	VALUES ($1, $2, $3, now())
	ON CONFLICT (model, fingerprint) DO NOTHING
`
