package lot

import (
	"strconv"
	"strings"
	"time"
)

// Day codes in functional order, Monday first. The schedule string uses
// blocks of "DAYS HH:MM-HH:MM" separated by "|", where DAYS is either a
// range ("LUN-VIE"), a comma list ("LUN,MIE,SAB") or a single code.
var dayOrder = []string{"LUN", "MAR", "MIE", "JUE", "VIE", "SAB", "DOM"}

var dayToWeekday = map[string]time.Weekday{
	"LUN": time.Monday,
	"MAR": time.Tuesday,
	"MIE": time.Wednesday,
	"JUE": time.Thursday,
	"VIE": time.Friday,
	"SAB": time.Saturday,
	"DOM": time.Sunday,
}

// MinuteOfDay counts minutes since midnight.
type MinuteOfDay int

func (m MinuteOfDay) String() string {
	h := int(m) / 60
	min := int(m) % 60
	return pad2(h) + ":" + pad2(min)
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

// Block is one contiguous opening window applying to a set of weekdays.
type Block struct {
	days  map[time.Weekday]bool
	start MinuteOfDay
	end   MinuteOfDay
}

func (b Block) Covers(d time.Weekday) bool {
	return b.days[d]
}

func (b Block) Start() MinuteOfDay { return b.start }
func (b Block) End() MinuteOfDay   { return b.end }

type Schedule struct {
	blocks []Block
}

// EmptySchedule is used when a lot has no (or an unparseable) opening-hours
// string; downstream checks treat it as "never flag anything".
func EmptySchedule() Schedule {
	return Schedule{}
}

func (s Schedule) IsEmpty() bool {
	return len(s.blocks) == 0
}

func (s Schedule) Blocks() []Block {
	return s.blocks
}

// BlocksFor returns the opening windows for a given weekday.
func (s Schedule) BlocksFor(d time.Weekday) []Block {
	var out []Block
	for _, b := range s.blocks {
		if b.Covers(d) {
			out = append(out, b)
		}
	}
	return out
}

// ParseSchedule parses an opening-hours string such as
// "LUN-VIE 08:00-20:00|SAB 09:00-13:00". A blank string yields an empty
// schedule without error; any malformed block fails the whole parse.
func ParseSchedule(raw string) (Schedule, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return EmptySchedule(), nil
	}

	var blocks []Block
	for _, part := range strings.Split(trimmed, "|") {
		block, err := parseBlock(strings.TrimSpace(part))
		if err != nil {
			return Schedule{}, err
		}
		blocks = append(blocks, block)
	}
	return Schedule{blocks: blocks}, nil
}

// ParseScheduleLenient never fails: unparseable input degrades to an empty
// schedule so shift checks stay silent instead of mislabeling.
func ParseScheduleLenient(raw string) Schedule {
	s, err := ParseSchedule(raw)
	if err != nil {
		return EmptySchedule()
	}
	return s
}

func parseBlock(part string) (Block, error) {
	fields := strings.Fields(part)
	if len(fields) != 2 {
		return Block{}, ErrInvalidSchedule
	}

	days, err := parseDays(fields[0])
	if err != nil {
		return Block{}, err
	}

	start, end, err := parseTimeRange(fields[1])
	if err != nil {
		return Block{}, err
	}

	return Block{days: days, start: start, end: end}, nil
}

func parseDays(spec string) (map[time.Weekday]bool, error) {
	days := make(map[time.Weekday]bool)

	if strings.Contains(spec, "-") {
		bounds := strings.SplitN(spec, "-", 2)
		from := indexOfDay(bounds[0])
		to := indexOfDay(bounds[1])
		if from < 0 || to < 0 || from > to {
			return nil, ErrInvalidSchedule
		}
		for i := from; i <= to; i++ {
			days[dayToWeekday[dayOrder[i]]] = true
		}
		return days, nil
	}

	for _, code := range strings.Split(spec, ",") {
		wd, ok := dayToWeekday[strings.TrimSpace(code)]
		if !ok {
			return nil, ErrInvalidSchedule
		}
		days[wd] = true
	}
	return days, nil
}

func indexOfDay(code string) int {
	for i, c := range dayOrder {
		if c == strings.TrimSpace(code) {
			return i
		}
	}
	return -1
}

func parseTimeRange(spec string) (MinuteOfDay, MinuteOfDay, error) {
	bounds := strings.SplitN(spec, "-", 2)
	if len(bounds) != 2 {
		return 0, 0, ErrInvalidSchedule
	}

	start, err := parseHHMM(bounds[0])
	if err != nil {
		return 0, 0, err
	}
	end, err := parseHHMM(bounds[1])
	if err != nil {
		return 0, 0, err
	}
	if start >= end {
		return 0, 0, ErrInvalidSchedule
	}
	return start, end, nil
}

func parseHHMM(s string) (MinuteOfDay, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, ErrInvalidSchedule
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, ErrInvalidSchedule
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, ErrInvalidSchedule
	}
	return MinuteOfDay(h*60 + m), nil
}
