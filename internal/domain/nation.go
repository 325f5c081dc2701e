package domain

// Nation - снимок государства.
type Nation struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	CapitalCityID int64   `json:"capitalCityId"`
	Gold          int     `json:"gold"`
	Rice          int     `json:"rice"`
	Tech          float64 `json:"tech"`
	Level         int     `json:"level"`
	WarState      int     `json:"warState"`
	GenNum        int     `json:"genNum"`
	TypeCode      string  `json:"typeCode,omitempty"`
	RateTax       int     `json:"rateTax,omitempty"`
}

// TechCost - множитель стоимости от уровня технологии. nil-государство даёт 1.
func (n *Nation) TechCost() float64 {
	if n == nil {
		return 1
	}
	return 1 + n.Tech/1000
}
