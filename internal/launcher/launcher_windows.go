// Windows player arguments. There is no FIFO equivalent; the player serves
// a named pipe itself via --input-ipc-server. Lines that do not start with
// "{" are interpreted as plain input commands on that pipe, so the same
// command encoding works on both platforms.

//go:build windows

package launcher

// channelArg returns the startup option pointing the player at its channel.
func channelArg(path string) string {
	return "--input-ipc-server=" + path
}
