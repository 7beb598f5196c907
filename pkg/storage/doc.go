/*
Package storage caches the last relation payload published per relation id
in a local BoltDB file. The encoded payload is byte-stable for identical
input, so a simple string comparison against the cache tells whether a
relation write can be skipped.
*/
package storage
