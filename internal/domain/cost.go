package domain

// Cost - цена команды в золоте и провианте.
type Cost struct {
	Gold int `json:"gold"`
	Rice int `json:"rice"`
}
