package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"aureus/pkg/parse"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: go run ./cmd/parsecheck \"beli kopi 25rb kemarin\"")
		os.Exit(2)
	}
	text := strings.Join(os.Args[1:], " ")
	cand, err := parse.Parse(text, time.Now())
	if err != nil {
		log.Fatalf("parse error: %v", err)
	}
	fmt.Printf("type=%s amount=%d category=%q description=%q date=%s\n",
		cand.Kind, cand.Amount, cand.Category, cand.Description, cand.Date.Format("2006-01-02"))
}
