package utils

import "github.com/fatih/color"

var (
	Bold    = color.New(color.Bold)
	Red     = color.New(color.FgRed)
	Error   = color.New(color.FgRed, color.Bold)
	Warn    = color.New(color.FgYellow)
	HiGreen = color.New(color.FgHiGreen)
	Success = color.New(color.FgGreen, color.Bold)
	BgWhite = color.New(color.BgWhite, color.FgBlack)
)
