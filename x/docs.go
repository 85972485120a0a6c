/*
Package x contains some standard extensions

Extensions implement common functionality (Handler, Decorator,
etc.) and can be combined together to construct an application

All sub-packages are various extensions, useful to build
applications, but not necessary to use the framework.
The kitties extension is the core of the registry, caller
authenticates transactions and utils provides decorators
every application needs.
*/
package x
