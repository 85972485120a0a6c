/*
Package utils contains decorators shared by every application stack: panic
recovery, per transaction logging, savepoints and action tagging.
*/
package utils
