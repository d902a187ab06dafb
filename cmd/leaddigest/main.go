package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var code int
	switch os.Args[1] {
	case "import":
		code = cmdImport(os.Args[2:])
	case "summarize":
		code = cmdSummarize(os.Args[2:])
	case "digest":
		code = cmdDigest(os.Args[2:])
	case "transcribe":
		code = cmdTranscribe(os.Args[2:])
	case "watch":
		code = cmdWatch(os.Args[2:])
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		printUsage()
		code = 1
	}
	os.Exit(code)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `leaddigest: lead conversations to daily digests

usage:
  leaddigest import     -lead-id 101 -file chat.json [-format json|txt] [-clear]
  leaddigest summarize  -lead-id 101|all [-source call|chat|both] [-date YYYY-MM-DD] [-all-history]
  leaddigest digest     [-date YYYY-MM-DD] [-send] [-bot-token T] [-chat-id C]
  leaddigest transcribe -file rec.webm | -dir recordings/ | -test [-key K] [-no-db]
  leaddigest watch      [-dir recordings/] [-key K] [-no-db]

import      Normalizes a chat export and stores its messages.
summarize   Writes per-lead call and chat summaries for a day.
digest      Combines a day's summaries and writes the daily digest.
transcribe  Converts recordings and transcribes them with SpeechKit.
watch       Transcribes recordings as they appear in a directory.

Every command accepts -config (default config.yaml).
`)
}
