/*
Package weave holds the interfaces shared by the application, the decorators
and the extensions: stores, transactions, handlers and queries.

Block and transaction data travel in a context.Context. Every value has a
setter and a getter:

	ctx = weave.WithHeight(ctx, 7)
	height, ok := weave.GetHeight(ctx)

Values describing the block, such as the height and the header, can be set
only once so that no decorator can change them for the layers below.
*/
package weave
