package weave

// version is overwritten by release builds:
//
//	go build -ldflags "-X github.com/iov-one/kitties/weave.version=v0.2.0"
var version = "v0.1.0-dev"

// Version returns the software version reported by the ABCI Info call.
func Version() string {
	return version
}
