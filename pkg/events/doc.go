/*
Package events provides a small in-process pub/sub broker for node
lifecycle events: transactions submitted or skipped, mempool overflow,
blocks mined, and rendezvous peer membership changes.

Broker fans a single internal event channel out to any number of
subscriber channels. A slow or inattentive subscriber never blocks the
broker or other subscribers — a full subscriber buffer simply drops the
event. Publish stamps a unique ID (github.com/google/uuid) and a
timestamp onto any event that doesn't already carry one.
*/
package events
