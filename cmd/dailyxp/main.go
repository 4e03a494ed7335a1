package main

import "github.com/Gravitonian77/DailyXP/cmd/dailyxp/root"

func main() {
	root.Execute()
}
