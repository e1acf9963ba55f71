package log

import (
	"fmt"
	"os"
)

// Sink receives formatted log entries.
type Sink interface {
	Write(level, message string) error
	Close() error
}

// Console writes colored entries to standard output.
type Console struct {
	formatter Formatter
}

func (c *Console) Write(level, message string) error {
	_, err := fmt.Print(c.formatter.FormatColored(level, message))
	return err
}

func (c *Console) Close() error {
	return nil
}

// File writes plain entries to a log file.
type File struct {
	file      *os.File
	formatter Formatter
}

func (f *File) Write(level, message string) error {
	_, err := f.file.WriteString(f.formatter.Format(level, message))
	return err
}

func (f *File) Close() error {
	return f.file.Close()
}
