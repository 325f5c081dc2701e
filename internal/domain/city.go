package domain

// Ключи городских атрибутов.
const (
	CityPop   = "pop"
	CityAgri  = "agri"
	CityComm  = "comm"
	CitySecu  = "secu"
	CityDef   = "def"
	CityWall  = "wall"
	CityTrust = "trust"
)

// Состояние фронта: 1 и 3 означают прифронтовой город.
const (
	FrontNone    = 0
	FrontWar     = 1
	FrontBorder  = 2
	FrontCapital = 3
)

// City - снимок города.
type City struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	NationID    int64  `json:"nationId"`
	Level       int    `json:"level"`
	SupplyState int    `json:"supplyState"`
	FrontState  int    `json:"frontState"`

	Pop     int `json:"pop"`
	PopMax  int `json:"popMax"`
	Agri    int `json:"agri"`
	AgriMax int `json:"agriMax"`
	Comm    int `json:"comm"`
	CommMax int `json:"commMax"`
	Secu    int `json:"secu"`
	SecuMax int `json:"secuMax"`
	Def     int `json:"def"`
	DefMax  int `json:"defMax"`
	Wall    int `json:"wall"`
	WallMax int `json:"wallMax"`

	Trust float64 `json:"trust"`
	Trade int     `json:"trade,omitempty"`
}

// Attr возвращает текущее значение и максимум атрибута.
// ok=false для неизвестного ключа.
func (c *City) Attr(key string) (cur, maxValue int, ok bool) {
	switch key {
	case CityPop:
		return c.Pop, c.PopMax, true
	case CityAgri:
		return c.Agri, c.AgriMax, true
	case CityComm:
		return c.Comm, c.CommMax, true
	case CitySecu:
		return c.Secu, c.SecuMax, true
	case CityDef:
		return c.Def, c.DefMax, true
	case CityWall:
		return c.Wall, c.WallMax, true
	}
	return 0, 0, false
}

// IsSupplied - город снабжается.
func (c *City) IsSupplied() bool {
	return c.SupplyState > 0
}

// IsFrontLine - город объявлен прифронтовым.
func (c *City) IsFrontLine() bool {
	return c.FrontState == FrontWar || c.FrontState == FrontCapital
}
