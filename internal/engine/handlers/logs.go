package handlers

import "strconv"

// Префиксы каналов. Строки без префикса - личный журнал исполнителя.
const (
	ChannelHistory             = "_history:"
	ChannelGlobal              = "_global:"
	ChannelGlobalAction        = "_globalAction:"
	ChannelGlobalHistory       = "_globalHistory:"
	ChannelNationalHistory     = "_nationalHistory:"
	channelDestGeneralLog      = "_destGeneralLog:"
	channelDestNationalHistory = "_destNationalHistory:"
)

// Logs накапливает строки повествования в порядке появления.
type Logs struct {
	lines []string
}

// Push - строка в личный журнал исполнителя.
func (l *Logs) Push(line string) { l.lines = append(l.lines, line) }

func (l *Logs) History(line string)         { l.push(ChannelHistory, line) }
func (l *Logs) Global(line string)          { l.push(ChannelGlobal, line) }
func (l *Logs) GlobalAction(line string)    { l.push(ChannelGlobalAction, line) }
func (l *Logs) GlobalHistory(line string)   { l.push(ChannelGlobalHistory, line) }
func (l *Logs) NationalHistory(line string) { l.push(ChannelNationalHistory, line) }

// DestGeneral - строка в журнал полководца-цели.
func (l *Logs) DestGeneral(id int64, line string) {
	l.push(channelDestGeneralLog+strconv.FormatInt(id, 10)+":", line)
}

// DestNationalHistory - строка в историю государства-цели.
func (l *Logs) DestNationalHistory(id int64, line string) {
	l.push(channelDestNationalHistory+strconv.FormatInt(id, 10)+":", line)
}

// Lines возвращает накопленные строки; пустой срез вместо nil.
func (l *Logs) Lines() []string {
	if l.lines == nil {
		return []string{}
	}
	return l.lines
}

func (l *Logs) push(prefix, line string) {
	l.lines = append(l.lines, prefix+line)
}
