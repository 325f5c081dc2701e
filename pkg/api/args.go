package api

// --- Аргументы команд ---

// Defaulter заполняет значения по умолчанию до разбора JSON.
type Defaulter interface {
	SetDefaults()
}

// NoArgs - команда без аргументов.
type NoArgs struct{}

// ResourceArgs - сумма золота или зерна (헌납, 포상).
type ResourceArgs struct {
	IsGold bool `json:"isGold"`
	Amount int  `json:"amount"`
}

func (a *ResourceArgs) SetDefaults() {
	a.IsGold = true
	a.Amount = 100
}

// GiftArgs - передача ресурса другому полководцу (증여, 포상).
type GiftArgs struct {
	ResourceArgs
	DestGeneralID int64 `json:"destGeneralId"`
}

// RecruitArgs - набор войск (징병, 모병).
type RecruitArgs struct {
	CrewType int `json:"crewType"`
	Amount   int `json:"amount"`
}

func (a *RecruitArgs) SetDefaults() {
	a.Amount = 100
}

// TradeArgs - покупка или продажа зерна (군량매매).
type TradeArgs struct {
	BuyRice bool `json:"buyRice"`
	Amount  int  `json:"amount"`
}

func (a *TradeArgs) SetDefaults() {
	a.BuyRice = true
	a.Amount = 100
}

// DestCityArgs - команда против города (화계, 선동, 탈취, 첩보).
type DestCityArgs struct {
	DestCityID int64 `json:"destCityId"`
}

// DestNationArgs - команда против государства (선전포고).
type DestNationArgs struct {
	DestNationID int64 `json:"destNationId"`
}

// CeasefireArgs - ответ на предложение полководца чужого государства (종전수락).
type CeasefireArgs struct {
	DestNationID  int64 `json:"destNationId"`
	DestGeneralID int64 `json:"destGeneralId"`
}

// FoundNationArgs - основание государства (건국).
type FoundNationArgs struct {
	NationName string `json:"nationName"`
	NationType string `json:"nationType"`
	ColorType  int    `json:"colorType"`
}

func (a *FoundNationArgs) SetDefaults() {
	a.NationName = "신생국"
	a.NationType = "군벌"
}
