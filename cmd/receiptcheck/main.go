package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"aureus/pkg/ocr"
)

func main() {
	f := flag.String("file", "", "receipt image to OCR")
	raw := flag.Bool("raw", false, "also print the extracted text")
	flag.Parse()
	if *f == "" {
		log.Fatalf("-file required")
	}
	if *raw {
		text, err := ocr.ExtractText(*f)
		if err != nil {
			log.Fatalf("ocr error: %v", err)
		}
		fmt.Println(text)
	}
	cand, err := ocr.ParseReceipt(*f, time.Now())
	if err != nil {
		log.Fatalf("parse error: %v", err)
	}
	fmt.Printf("amount=%d category=%q description=%q\n", cand.Amount, cand.Category, cand.Description)
}
