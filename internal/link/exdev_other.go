//go:build !unix

package link

func isEXDEV(error) bool { return false }
