package main

import (
	"rrna16/internal/app"
	"rrna16/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
