// Package offline intercepts the client's API traffic and serves it from the
// local store while the device is offline.
//
// Reads go through Fetcher.Get: online they hit the network unchanged,
// offline they are answered from the entity repository (or from a derived
// route such as the next custom item number) and fall back to the network on
// a cache miss. Writes go through Fetcher.Update: offline they are turned into
// an UpdateRequest by the Builder and applied by the Updater, which queues the
// request and patches the cached entities in one transaction so that later
// reads see the write.
package offline
