/*
Package app turns a weave.Handler and a weave.CommitKVStore into a tendermint
ABCI application.

StoreApp implements storage, queries, genesis loading and commits. BaseApp
adds CheckTx, DeliverTx and BeginBlock by dispatching decoded transactions to
a handler, usually a Router wrapped with ChainDecorators.
*/
package app
