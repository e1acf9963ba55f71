//go:build pprof

package main

import (
	"log"
	"net/http"
	_ "net/http/pprof"
)

func init() {
	log.Println("Started pprof server on :6060.")
	go func() {
		log.Println(http.ListenAndServe("localhost:6060", nil))
	}()
}
