package utils

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/nishihata/food-saver/models"
)

// LabelFields is the best-effort structure read out of a label's OCR text.
// HasDate is false when no candidate date was found.
type LabelFields struct {
	Name     string
	Date     time.Time
	HasDate  bool
	Category models.FoodCategory
}

var (
	// 2025-06-01, 2025/6/1, 2025.06.01, 2025年6月1日
	fullYearDate = regexp.MustCompile(`(\d{4})[./\-年](\d{1,2})[./\-月](\d{1,2})日?`)
	// 25.06.01 style short years, common on Japanese labels
	shortYearDate = regexp.MustCompile(`(^|\D)(\d{2})[./\-](\d{1,2})[./\-](\d{1,2})($|\D)`)
)

// ParseLabel extracts an expiration date, product name and category guess
// from raw OCR text. Labels often carry both a manufacture date and an
// expiration date; the expiration is the later one, so when several
// candidates appear the latest date wins.
func ParseLabel(rawText string) LabelFields {
	fields := LabelFields{Category: GuessCategory(rawText)}

	for _, d := range candidateDates(rawText) {
		if !fields.HasDate || d.After(fields.Date) {
			fields.Date = d
			fields.HasDate = true
		}
	}

	fields.Name = guessName(rawText)
	return fields
}

func candidateDates(s string) []time.Time {
	var dates []time.Time

	for _, m := range fullYearDate.FindAllStringSubmatch(s, -1) {
		if d, ok := makeDate(m[1], m[2], m[3]); ok {
			dates = append(dates, d)
		}
	}
	for _, m := range shortYearDate.FindAllStringSubmatch(s, -1) {
		year, _ := strconv.Atoi(m[2])
		if d, ok := makeDate(strconv.Itoa(2000+year), m[3], m[4]); ok {
			dates = append(dates, d)
		}
	}
	return dates
}

// makeDate validates via round-trip so 2025-13-40 doesn't normalize into a
// different month.
func makeDate(ys, ms, ds string) (time.Time, bool) {
	year, _ := strconv.Atoi(ys)
	month, _ := strconv.Atoi(ms)
	day, _ := strconv.Atoi(ds)
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Year() != year || int(d.Month()) != month || d.Day() != day {
		return time.Time{}, false
	}
	return d, true
}

// guessName picks the first line that looks like a product name: contains
// letters and is not itself a date or a barcode-ish run of digits.
func guessName(rawText string) string {
	for _, line := range strings.Split(rawText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || fullYearDate.MatchString(line) || shortYearDate.MatchString(line) {
			continue
		}

		letters := 0
		for _, r := range line {
			if unicode.IsLetter(r) {
				letters++
			}
		}
		if letters >= 2 {
			return line
		}
	}
	return ""
}

var categoryKeywords = []struct {
	category models.FoodCategory
	words    []string
}{
	{models.CategoryDairy, []string{"milk", "yogurt", "yoghurt", "cheese", "butter", "牛乳", "ヨーグルト", "チーズ", "乳"}},
	{models.CategoryMeatFish, []string{"beef", "pork", "chicken", "ham", "fish", "salmon", "tuna", "肉", "魚", "ハム"}},
	{models.CategoryVegetable, []string{"lettuce", "tomato", "cabbage", "spinach", "vegetable", "salad", "野菜", "サラダ"}},
	{models.CategorySeasoning, []string{"sauce", "soy", "miso", "salt", "sugar", "dressing", "醤油", "味噌", "調味"}},
	{models.CategoryBeverage, []string{"juice", "tea", "coffee", "water", "drink", "ジュース", "茶", "コーヒー", "飲料"}},
}

// GuessCategory matches the OCR text against a small keyword table and
// returns "other" when nothing matches.
func GuessCategory(text string) models.FoodCategory {
	lower := strings.ToLower(text)
	for _, entry := range categoryKeywords {
		for _, w := range entry.words {
			if strings.Contains(lower, w) {
				return entry.category
			}
		}
	}
	return models.CategoryOther
}
