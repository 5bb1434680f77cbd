// Package etherpad provides a client for the Etherpad Lite HTTP API.
//
// Every API method is reached through Client.Call, which builds the
// versioned path (<basePath>/1/<method>), adds the API key as the "apikey"
// parameter, sends the request and decodes the {code, message, data}
// envelope the server replies with. The typed methods (CreatePad, GetText,
// SetText, ...) are thin wrappers over a table of method declarations.
//
// # Usage
//
//	logger := zerolog.New(os.Stdout)
//	client, err := etherpad.NewClient(
//		"http://localhost:9001/api",
//		"your-api-key",
//		logger,
//		etherpad.WithTimeout(10*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	ctx := context.Background()
//	if err := client.CreatePad(ctx, "notes", nil); err != nil {
//		log.Fatal(err)
//	}
//	text, err := client.GetText(ctx, "notes", nil)
//
// # TLS
//
// A client talks TLS only when the configured port is 443; the URL scheme is
// not consulted. Peer verification uses the trust-anchor path from
// WithCAPath, or else the one found by DefaultCAResolver. When neither
// yields a path, verification is disabled and a warning is logged.
//
// # Error Handling
//
// Failed calls return an *Error whose Kind is one of:
//
//   - KindInvalidArgument: bad input, or envelope codes 1, 3 and 4
//   - KindServer: envelope code 2
//   - KindProtocol: non-JSON body or an unknown code
//   - KindTransport: network or TLS failure
//
// Use errors.Is with ErrInvalidArgument, ErrServer, ErrProtocol and
// ErrTransport, or the Is* helpers:
//
//	if etherpad.IsInvalidArgument(err) {
//		// padID does not exist, bad API key, ...
//	}
//
// Nothing is retried.
package etherpad
