/*
Package rendezvous implements the external peer-discovery overlay:
a TLS listener (Host, backing "host serve") that learns each
connecting node's advertised endpoint and periodically rebroadcasts
the full known peer set as newline-delimited JSON, and a client
(Client, backing "node serve") that advertises its own endpoint and
learns the others. PeerSet tracks membership and mirrors changes into
RendezvousPeersTotal and, when a broker is attached, the node's event
stream. This package never touches consensus, mining, or storage.
*/
package rendezvous
