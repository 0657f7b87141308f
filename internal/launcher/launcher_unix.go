// Unix player arguments. The control channel is a FIFO, handed to the
// player via --input-file so it reads plain command lines from it.

//go:build !windows

package launcher

// channelArg returns the startup option pointing the player at its channel.
func channelArg(path string) string {
	return "--input-file=" + path
}
