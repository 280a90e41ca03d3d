package entities

// SeedPayload is the flat row shape the destination store expects. Nullable
// fields are pointers without omitempty so a missing value is sent as null.
type SeedPayload struct {
	Name    string  `json:"name"`
	Types   string  `json:"types"`
	Sprite  *string `json:"sprite"`
	Attack  *int    `json:"attack"`
	Defense *int    `json:"defense"`
	HP      *int    `json:"hp"`
	Speed   *int    `json:"speed"`
	Moves   string  `json:"moves"`
}

// StoredRecord is the destination store's echo of an inserted row
type StoredRecord struct {
	ID int `json:"id"`
	SeedPayload
}
