//go:build !linux

package batch

import "os"

func fadviseSequential(*os.File) {}
