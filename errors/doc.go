/*
Package errors defines the error kinds of the registry and the helpers to
annotate and report them.

Every error returned by a handler wraps a kind created with Register. The kind
gives the ABCI code of the response, and Is finds it through any number of
Wrap, Field and Append layers. Extensions register their own kinds, for
example x/kitties uses codes 500 and above.

ABCIInfo turns an error into the code and the log of an ABCI response. Errors
without a kind are internal and their message is only shown in debug mode.
*/
package errors
