package tier

import (
	"fmt"
	"strings"
)

// Tier представляет уровень участника программы лояльности
type Tier string

const (
	Bronze   Tier = "BRONZE"
	Silver   Tier = "SILVER"
	Gold     Tier = "GOLD"
	Platinum Tier = "PLATINUM"
	Diamond  Tier = "DIAMOND"
)

// Threshold нижняя граница (включительно) суммы заработанных баллов для уровня
type Threshold struct {
	Tier      Tier
	MinPoints int64
}

// thresholds упорядочены по возрастанию
var thresholds = []Threshold{
	{Tier: Bronze, MinPoints: 0},
	{Tier: Silver, MinPoints: 500},
	{Tier: Gold, MinPoints: 2000},
	{Tier: Platinum, MinPoints: 5000},
	{Tier: Diamond, MinPoints: 10000},
}

// Thresholds возвращает копию таблицы уровней
func Thresholds() []Threshold {
	out := make([]Threshold, len(thresholds))
	copy(out, thresholds)
	return out
}

// For вычисляет уровень по сумме заработанных баллов
func For(totalPoints int64) Tier {
	result := Bronze
	for _, t := range thresholds {
		if totalPoints < t.MinPoints {
			break
		}
		result = t.Tier
	}
	return result
}

// Next возвращает следующий уровень и сколько баллов до него осталось.
// ok == false, если уровень уже максимальный.
func Next(totalPoints int64) (next Tier, remaining int64, ok bool) {
	for _, t := range thresholds {
		if totalPoints < t.MinPoints {
			return t.Tier, t.MinPoints - totalPoints, true
		}
	}
	return "", 0, false
}

// Rank возвращает порядковый номер уровня (BRONZE = 0)
func (t Tier) Rank() int {
	for i, th := range thresholds {
		if th.Tier == t {
			return i
		}
	}
	return -1
}

// Valid проверяет, что уровень известен
func (t Tier) Valid() bool {
	return t.Rank() >= 0
}

// Parse разбирает строковое представление уровня
func Parse(s string) (Tier, error) {
	t := Tier(strings.ToUpper(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown tier %q", s)
	}
	return t, nil
}
