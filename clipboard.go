package main

import (
	"log"

	"golang.design/x/clipboard"
)

// clipboardReady is false on headless systems where the clipboard could not
// be initialized.
var clipboardReady bool

func initClipboard() {
	if err := clipboard.Init(); err != nil {
		log.Printf("clipboard disabled: %v", err)
		return
	}
	clipboardReady = true
}

func writeClipboard(data []byte) {
	clipboard.Write(clipboard.FmtText, data)
}
