/*
Package gconf keeps the configuration of each extension in the database.

Each extension keeps a single configuration object under the "_c:<package>"
key. It is loaded from the "conf" section of the genesis file with InitConfig
and read back with Load whenever the extension needs it. Saving always
validates first, so an invalid configuration never reaches the database.
*/
package gconf
