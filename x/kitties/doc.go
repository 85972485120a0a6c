/*
Package kitties implements a registry of uniquely identified kitties.

Every kitty is identified by its DNA and owned by exactly one account. Two
buckets are kept consistent with each other: kitties by DNA, and the list of
DNAs owned by every account. A counter tracks how many kitties exist.

All state changes go through the Controller. New kitties are minted either by
a CreateMsg, with a DNA generated from the block randomness, or by the
genesis preload. Kitties are moved between accounts by a TransferMsg.
*/
package kitties
