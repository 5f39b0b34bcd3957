package main

import (
	"context"
	"os"

	"github.com/dmitrijs2005/siteback/internal/admincli"
)

func main() {
	os.Exit(admincli.Execute(context.Background()))
}
