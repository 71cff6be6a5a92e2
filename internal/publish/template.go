package publish

// indexHTML is the static viewer page. Zone rectangles are stored in
// authoring coordinates; the script converts them to percentages of
// the page width so the layout survives any display size.
const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
  body { margin: 0; font-family: system-ui, sans-serif; background: #2b2b2b; }
  #page-wrap { position: relative; max-width: 900px; margin: 0 auto; touch-action: pan-y pinch-zoom; }
  #page-img { width: 100%; display: block; }
  .zone { position: absolute; cursor: pointer; }
  .zone:hover, .zone:focus { outline: 2px solid #4a90d9; background: rgba(74,144,217,0.15); }
  #lightbox { position: fixed; inset: 0; background: rgba(0,0,0,0.9); display: none;
              flex-direction: column; align-items: center; justify-content: center; z-index: 10; }
  #lightbox.open { display: flex; }
  #lightbox img { max-width: 90vw; max-height: 75vh; }
  #caption { color: #ddd; padding: 12px; text-align: center; }
  #lightbox button { background: none; border: none; color: #fff; font-size: 2rem; cursor: pointer; }
  #nav { display: flex; gap: 3rem; }
</style>
</head>
<body>
<div id="page-wrap">
  <img id="page-img" src="{{.PageImage}}" alt="{{.Title}}">
</div>
<div id="lightbox">
  <img id="lightbox-img" alt="">
  <div id="caption"></div>
  <div id="nav">
    <button id="prev" aria-label="Previous">&#8249;</button>
    <button id="close" aria-label="Close">&times;</button>
    <button id="next" aria-label="Next">&#8250;</button>
  </div>
</div>
<script>
(function () {
  "use strict";
  var wrap = document.getElementById("page-wrap");
  var lightbox = document.getElementById("lightbox");
  var lbImg = document.getElementById("lightbox-img");
  var caption = document.getElementById("caption");
  var photos = [], index = 0;

  function show(i) {
    if (!photos.length) return;
    index = (i + photos.length) % photos.length;
    lbImg.src = photos[index].file;
    caption.textContent = photos[index].caption || "";
  }
  function open(zone) {
    if (!zone.photos || !zone.photos.length) return;
    photos = zone.photos;
    show(0);
    lightbox.classList.add("open");
  }
  document.getElementById("close").addEventListener("click", function () {
    lightbox.classList.remove("open");
  });
  document.getElementById("prev").addEventListener("click", function () { show(index - 1); });
  document.getElementById("next").addEventListener("click", function () { show(index + 1); });
  document.addEventListener("keydown", function (e) {
    if (!lightbox.classList.contains("open")) return;
    if (e.key === "Escape") lightbox.classList.remove("open");
    if (e.key === "ArrowLeft") show(index - 1);
    if (e.key === "ArrowRight") show(index + 1);
  });

  fetch("regions.json").then(function (r) { return r.json(); }).then(function (m) {
    var w0 = m.authoring_width;
    var h0 = w0 * m.page_aspect;
    m.regions.forEach(function (zone) {
      var el = document.createElement("a");
      el.className = "zone";
      el.tabIndex = 0;
      el.style.left = (100 * zone.x / w0) + "%";
      el.style.top = (100 * zone.y / h0) + "%";
      el.style.width = (100 * zone.width / w0) + "%";
      el.style.height = (100 * zone.height / h0) + "%";
      el.addEventListener("click", function () { open(zone); });
      el.addEventListener("keydown", function (e) {
        if (e.key === "Enter" || e.key === " ") { e.preventDefault(); open(zone); }
      });
      wrap.appendChild(el);
    });
  });
})();
</script>
</body>
</html>
`
