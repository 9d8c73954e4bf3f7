package backup

// storeInput снимок хранится как есть, поэтому тело читается без схемы
type storeInput struct {
	RawBody []byte `contentType:"application/json"`
}
