package common

import logging "github.com/op/go-logging"

var log = logging.MustGetLogger("fts")
var debug = true

func INFO(format string, args ...any) {
	log.Infof(format, args...)
}
func WARN(format string, args ...any) {
	log.Warningf(format, args...)
}
func FAIL(format string, args ...any) {
	log.Errorf(format, args...)
}

func DINFO(format string, args ...any) {
	if debug {
		log.Infof(format, args...)
	}
}
func DWARN(format string, args ...any) {
	if debug {
		log.Warningf(format, args...)
	}
}
func DFAIL(format string, args ...any) {
	if debug {
		log.Errorf(format, args...)
	}
}
