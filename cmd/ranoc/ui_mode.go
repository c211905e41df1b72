package main

import (
	"fmt"
	"strings"
)

// progressUI is the resolved value of build --ui.
type progressUI uint8

const (
	progressAuto progressUI = iota
	progressAlways
	progressNever
)

var progressUINames = map[string]progressUI{
	"":     progressAuto,
	"auto": progressAuto,
	"on":   progressAlways,
	"off":  progressNever,
}

func (p progressUI) String() string {
	switch p {
	case progressAlways:
		return "on"
	case progressNever:
		return "off"
	}
	return "auto"
}

func parseProgressUI(flag string) (progressUI, error) {
	p, ok := progressUINames[strings.ToLower(strings.TrimSpace(flag))]
	if !ok {
		return progressAuto, fmt.Errorf("invalid --ui value %q (expected auto|on|off)", flag)
	}
	return p, nil
}

// enabled решает, рисовать ли прогресс; для auto нужен tty.
func (p progressUI) enabled(tty bool) bool {
	if p == progressAuto {
		return tty
	}
	return p == progressAlways
}
