package api

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// Validator - интерфейс, который могут реализовать аргументы команд
type Validator interface {
	Validate() error
}

// MaxNationNameLen - предел длины названия государства в символах.
const MaxNationNameLen = 12

func (a GiftArgs) Validate() error {
	if a.DestGeneralID <= 0 {
		return errors.New("destGeneralId is required")
	}
	return nil
}

func (a RecruitArgs) Validate() error {
	if a.CrewType < 0 {
		return errors.New("crewType must not be negative")
	}
	return nil
}

func (a DestCityArgs) Validate() error {
	if a.DestCityID <= 0 {
		return errors.New("destCityId is required")
	}
	return nil
}

func (a DestNationArgs) Validate() error {
	if a.DestNationID <= 0 {
		return errors.New("destNationId is required")
	}
	return nil
}

func (a CeasefireArgs) Validate() error {
	if a.DestNationID <= 0 {
		return errors.New("destNationId is required")
	}
	if a.DestGeneralID <= 0 {
		return errors.New("destGeneralId is required")
	}
	return nil
}

func (a FoundNationArgs) Validate() error {
	name := strings.TrimSpace(a.NationName)
	if name == "" {
		return errors.New("nationName is required")
	}
	if utf8.RuneCountInString(name) > MaxNationNameLen {
		return errors.New("nationName is too long")
	}
	if a.ColorType < 0 {
		return errors.New("colorType must not be negative")
	}
	return nil
}
