package model

// Party is a seller or buyer record from the external directory service.
// Records are consumed read-only: tax mode resolution and validation display
// look at them, nothing here mutates them.
type Party struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	GSTIN     string `json:"gstin"`
	StateCode string `json:"state_code"`
}
