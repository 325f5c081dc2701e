package domain

import "strings"

// CommandCode - внутренний числовой идентификатор команды
type CommandCode uint8

const (
	CmdUnknown CommandCode = iota
	CmdRest
	CmdFarmland
	CmdCommerce
	CmdSecurity
	CmdDefence
	CmdWall
	CmdSettle
	CmdTechResearch
	CmdTrain
	CmdMorale
	CmdBattleStance
	CmdConscript
	CmdRecruit
	CmdDonate
	CmdGift
	CmdDrill
	CmdProcure
	CmdTradeRice
	CmdFireAttack
	CmdAgitate
	CmdSeize
	CmdSpy
	CmdFoundNation
	CmdRaiseArmy
	CmdResign
	CmdMove
	CmdSortie

	// Команды уровня государства
	CmdNationReward
	CmdDeclareWar
	CmdAcceptCeasefire
)

// Маппинг для конвертации JSON -> Domain
var commandKeyToCode = map[string]CommandCode{
	"휴식":   CmdRest,
	"농지개간": CmdFarmland,
	"상업투자": CmdCommerce,
	"치안강화": CmdSecurity,
	"수비강화": CmdDefence,
	"성벽보수": CmdWall,
	"정착장려": CmdSettle,
	"기술연구": CmdTechResearch,
	"훈련":   CmdTrain,
	"사기진작": CmdMorale,
	"전투태세": CmdBattleStance,
	"징병":   CmdConscript,
	"모병":   CmdRecruit,
	"헌납":   CmdDonate,
	"증여":   CmdGift,
	"단련":   CmdDrill,
	"물자조달": CmdProcure,
	"군량매매": CmdTradeRice,
	"화계":   CmdFireAttack,
	"선동":   CmdAgitate,
	"탈취":   CmdSeize,
	"첩보":   CmdSpy,
	"건국":   CmdFoundNation,
	"거병":   CmdRaiseArmy,
	"하야":   CmdResign,
	"이동":   CmdMove,
	"출병":   CmdSortie,
	"포상":   CmdNationReward,
	"선전포고": CmdDeclareWar,
	"종전수락": CmdAcceptCeasefire,
}

// Маппинг для логов Domain -> String
var commandCodeToKey = func() map[CommandCode]string {
	m := make(map[CommandCode]string, len(commandKeyToCode))
	for k, v := range commandKeyToCode {
		m[v] = k
	}
	return m
}()

// legacyPrefix - префикс ключей старого реестра ("che_훈련").
const legacyPrefix = "che_"

// ParseCommand конвертирует ключ команды в CommandCode.
// Принимает как "훈련", так и "che_훈련".
func ParseCommand(s string) CommandCode {
	key := strings.TrimPrefix(strings.TrimSpace(s), legacyPrefix)
	if val, ok := commandKeyToCode[key]; ok {
		return val
	}
	return CmdUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (c CommandCode) String() string {
	if val, ok := commandCodeToKey[c]; ok {
		return val
	}
	return "UNKNOWN"
}

// IsNationCommand - команда исполняется от имени государства.
func (c CommandCode) IsNationCommand() bool {
	return c >= CmdNationReward
}

// MarshalText сериализует код как ключ команды.
func (c CommandCode) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText парсит ключ команды. Неизвестный ключ даёт CmdUnknown.
func (c *CommandCode) UnmarshalText(data []byte) error {
	*c = ParseCommand(string(data))
	return nil
}
